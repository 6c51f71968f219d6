package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.backups.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// 202: the capture completes in the background; poll the list endpoint.
	writeJSON(w, http.StatusAccepted, toSnapshotResponse(snapshot))
}

func (h *Handler) handleRestoreBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.backups.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleListBackups(w http.ResponseWriter, _ *http.Request) {
	snapshots := h.backups.List()
	out := make([]snapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, toSnapshotResponse(snapshot))
	}
	writeJSON(w, http.StatusOK, out)
}
