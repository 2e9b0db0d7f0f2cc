package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/zonekit/zonekit/pkg/model"
)

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var input model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	user, err := h.backend.CreateUser(input.MerchantName, input.Email, input.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var input model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	actor, _, err := h.backend.Authenticate(input.Email, input.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := issueToken(h.jwtSecret, actor)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.LoginResponse{Token: token})
}
