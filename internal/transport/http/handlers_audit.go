package httptransport

import (
	"net/http"
	"time"

	"greenlight/internal/audit"
	"greenlight/pkg/apperrors"
)

// handleQueryAudit filters the audit trail. Supported query parameters:
// resource_type, actor_id, from, to (RFC 3339) and q (free text).
func (h *Handler) handleQueryAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := audit.Filter{
		ResourceType: audit.ResourceType(query.Get("resource_type")),
		ActorID:      query.Get("actor_id"),
		Text:         query.Get("q"),
	}

	var err error
	if filter.From, err = parseTimeParam(query.Get("from")); err != nil {
		writeError(w, err)
		return
	}
	if filter.To, err = parseTimeParam(query.Get("to")); err != nil {
		writeError(w, err)
		return
	}

	entries := h.auditLog.Query(r.Context(), filter)
	out := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toAuditEntryResponse(entry))
	}
	writeJSON(w, http.StatusOK, out)
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, "time parameters must be RFC 3339")
	}
	return t, nil
}
