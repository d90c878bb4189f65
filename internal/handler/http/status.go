package http

import (
	"net/http"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.services.AppInfoService.GetStatus(r.Context()), http.StatusOK)
}
