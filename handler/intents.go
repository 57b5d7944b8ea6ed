package handler

import (
	"net/http"

	"github.com/steven0413/BiblioteEmail/data/dto"
)

// submitIntentHandler runs the pipeline for a single request submitted
// directly over the API. Pipeline failures are data, not HTTP errors:
// the result envelope carries the success flag and message either way.
func (h *Handler) submitIntentHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.SubmitIntentRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	result := h.service.SubmitIntent(r.Context(), requestBody)
	if err := h.encodeJSON(w, http.StatusOK, envelope{"result": result}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// processPendingHandler kicks off batch processing of the inbox in the
// background and returns immediately.
func (h *Handler) processPendingHandler(w http.ResponseWriter, r *http.Request) {
	h.service.ProcessPendingInBackground()
	env := envelope{
		"message": "procesamiento de correos iniciado en segundo plano",
	}
	if err := h.encodeJSON(w, http.StatusAccepted, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
