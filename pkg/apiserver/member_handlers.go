package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zonekit/zonekit/pkg/model"
)

func (h *handler) inviteMember(w http.ResponseWriter, r *http.Request) {
	var input model.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	member, err := h.backend.InviteMember(actorFromContext(r.Context()), domain, input.Email, input.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, member)
}

func (h *handler) acceptInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	member, err := h.backend.AcceptInvite(actorFromContext(r.Context()), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}

func (h *handler) listMembers(w http.ResponseWriter, r *http.Request) {
	domain := mux.Vars(r)["domain"]
	members, err := h.backend.ListMembers(actorFromContext(r.Context()), domain)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, members)
}

func (h *handler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	if err := h.backend.RemoveMember(actorFromContext(r.Context()), domain, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *handler) changeMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	var input model.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, string(model.KindInvalidInput), err)
		return
	}

	domain := mux.Vars(r)["domain"]
	member, err := h.backend.ChangeMemberRole(actorFromContext(r.Context()), domain, userID, input.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}
