package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zonekit/zonekit/pkg/model"
)

func statusForKind(kind model.Kind) int {
	switch kind {
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case model.KindConflict:
		return http.StatusConflict
	case model.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// handleServiceError maps a typed service failure onto its HTTP status. Raw
// storage errors surface as a generic 500 so driver details never leak.
func handleServiceError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)

	var svcErr *model.Error
	if !errors.As(err, &svcErr) || kind == model.KindStorageError {
		logrus.Errorf("storage error: %v", err)
		err = errors.New("internal server error")
	}

	writeError(w, statusForKind(kind), string(kind), err)
}

func writeError(w http.ResponseWriter, httpStatus int, kind string, err error) {
	o := model.ErrorResponse{
		Status:  httpStatus,
		Kind:    kind,
		Message: err.Error(),
	}
	res, _ := json.Marshal(o)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, _ = w.Write(res)
}

func writeSuccess(w http.ResponseWriter, httpStatus int, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, string(model.KindStorageError), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, _ = w.Write(res)
}
