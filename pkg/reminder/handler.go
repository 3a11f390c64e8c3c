package reminder

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	permissions *Permissions
}

type PermissionDTO struct {
	State   PermissionState `json:"state"`
	Granted bool            `json:"granted"`
}

func NewHandler(permissions *Permissions) *Handler {
	return &Handler{permissions: permissions}
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	state := h.permissions.State(r.Context())
	writeJSON(w, PermissionDTO{State: state, Granted: state == PermissionGranted})
}

// RequestPermission prompts at most once; repeated calls return the stored
// outcome.
func (h *Handler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	granted := h.permissions.Request(r.Context())
	writeJSON(w, PermissionDTO{State: h.permissions.State(r.Context()), Granted: granted})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
