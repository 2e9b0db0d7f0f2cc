package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zonekit/zonekit/pkg/backend"
	"github.com/zonekit/zonekit/pkg/model"
	"github.com/zonekit/zonekit/pkg/version"
)

type handler struct {
	backend   backend.Backend
	jwtSecret []byte
}

func newHandler(b backend.Backend, jwtSecret []byte) *handler {
	return &handler{
		backend:   b,
		jwtSecret: jwtSecret,
	}
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	v := version.Get()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(`{"success": false}`))
	}
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	if err != nil {
		return 0, errors.New("malformed id in path")
	}
	return uint(id), nil
}

func (h *handler) listDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.backend.ListUserDomains(actorFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{"domains": domains})
}

func (h *handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var payload model.RecordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	rec, err := h.backend.CreateRecord(actorFromContext(r.Context()), domain, payload)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, rec)
}

func (h *handler) listRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.ListFilters{
		Type:      model.RecordType(q.Get("type")),
		Name:      q.Get("name"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("isActive"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}

	domain := mux.Vars(r)["domain"]
	page, err := h.backend.ListRecords(actorFromContext(r.Context()), domain, filters)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page)
}

func (h *handler) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	rec, err := h.backend.GetRecord(actorFromContext(r.Context()), domain, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, rec)
}

func (h *handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	var update model.RecordUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	rec, err := h.backend.UpdateRecord(actorFromContext(r.Context()), domain, id, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, rec)
}

func (h *handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	if err := h.backend.DeleteRecord(actorFromContext(r.Context()), domain, id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *handler) bulkUpdateRecords(w http.ResponseWriter, r *http.Request) {
	var input model.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}
	if len(input.Records) == 0 {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), errors.New("records array is required"))
		return
	}

	domain := mux.Vars(r)["domain"]
	results := h.backend.BulkUpdateRecords(actorFromContext(r.Context()), domain, input.Records)
	writeSuccess(w, http.StatusOK, results)
}

func (h *handler) bulkDeleteRecords(w http.ResponseWriter, r *http.Request) {
	var input model.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}
	if len(input.IDs) == 0 {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), errors.New("ids array is required"))
		return
	}

	domain := mux.Vars(r)["domain"]
	results := h.backend.BulkDeleteRecords(actorFromContext(r.Context()), domain, input.IDs)
	writeSuccess(w, http.StatusOK, results)
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	domain := mux.Vars(r)["domain"]
	stats, err := h.backend.GetStats(actorFromContext(r.Context()), domain)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats)
}

func (h *handler) listAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	domain := mux.Vars(r)["domain"]
	entries, err := h.backend.ListAuditLog(actorFromContext(r.Context()), domain, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, entries)
}
