package handler

import "net/http"

func (h *Handler) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	health := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": h.config.Server.Env,
			"version":     "1.0.0",
		},
	}
	err := h.encodeJSON(w, http.StatusOK, health, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// systemStatusHandler reports collaborator reachability. The check costs
// an oracle call, so it is meant for operators rather than probes.
func (h *Handler) systemStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := h.service.SystemStatus(r.Context())
	err := h.encodeJSON(w, http.StatusOK, envelope{"status": status}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
