package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/formgest/internal/compile"
	"github.com/dgallion1/formgest/internal/form"
	"github.com/dgallion1/formgest/internal/formsapi"
	"github.com/go-chi/chi/v5"
)

// handleGetForm retrieves a form's info, items and settings from the
// remote service.
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	f, err := s.orchestrator.FormsClient().GetForm(r.Context(), formID)
	if err != nil {
		writeResult(w, formsapi.Failure(err), errorStatus(err))
		return
	}
	writeResult(w, formsapi.Success(map[string]any{"form": f}), http.StatusOK)
}

// handleDeleteForm permanently deletes a form.
func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if err := s.orchestrator.FormsClient().DeleteForm(r.Context(), formID); err != nil {
		writeResult(w, formsapi.Failure(err), errorStatus(err))
		return
	}
	writeResult(w, formsapi.Success(map[string]any{"form_id": formID}), http.StatusOK)
}

// handleListResponses returns all responses submitted to a form.
func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	responses, err := s.orchestrator.FormsClient().ListResponses(r.Context(), formID)
	if err != nil {
		writeResult(w, formsapi.Failure(err), errorStatus(err))
		return
	}
	writeResult(w, formsapi.Success(map[string]any{
		"responses": responses,
		"count":     len(responses),
	}), http.StatusOK)
}

type questionRequest struct {
	Question *form.ExtractedQuestion `json:"question" validate:"required"`
	Index    int                     `json:"index" validate:"gte=0"`
}

// handleAddQuestion inserts a single question into an existing form at
// the given index.
func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")

	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.check.Struct(req); err != nil {
		jsonError(w, "question is required and index must be >= 0", http.StatusBadRequest)
		return
	}

	batch, err := compile.Compile(form.FormStructure{
		Questions: []form.ExtractedQuestion{*req.Question},
	})
	if err != nil {
		writeResult(w, formsapi.Failure(err), http.StatusBadRequest)
		return
	}
	batch[0].LocationIndex = req.Index

	s.submitBatch(w, r, formID, batch)
}

// handleUpdateQuestion rewrites an existing item in place. Only the
// fields named by the item's update mask change remotely.
func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	itemID := chi.URLParam(r, "itemID")

	var req struct {
		Question *form.ExtractedQuestion `json:"question" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.check.Struct(req); err != nil {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	item, err := compile.CompileUpdate(itemID, *req.Question)
	if err != nil {
		writeResult(w, formsapi.Failure(err), http.StatusBadRequest)
		return
	}

	s.submitBatch(w, r, formID, compile.Batch{item})
}

// handleDeleteQuestion removes the item at the given index.
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		jsonError(w, "index must be a non-negative integer", http.StatusBadRequest)
		return
	}

	s.submitBatch(w, r, formID, compile.Batch{compile.CompileDelete(index)})
}

// handleUpdateSettings applies quiz and general settings to a form.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")

	var settings map[string]any
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	requests := formsapi.SettingsRequests(settings)
	if len(requests) == 0 {
		jsonError(w, "no recognized settings keys", http.StatusBadRequest)
		return
	}

	result, err := s.orchestrator.FormsClient().BatchUpdate(r.Context(), formID, requests)
	if err != nil {
		writeResult(w, formsapi.Failure(err), errorStatus(err))
		return
	}
	writeResult(w, formsapi.Success(map[string]any{
		"form_id": formID,
		"applied": len(requests),
		"result":  result,
	}), http.StatusOK)
}

// submitBatch wraps the compiled batch into wire requests and sends it.
func (s *Server) submitBatch(w http.ResponseWriter, r *http.Request, formID string, batch compile.Batch) {
	requests, err := formsapi.Requests(batch)
	if err != nil {
		writeResult(w, formsapi.Failure(err), http.StatusBadRequest)
		return
	}
	result, err := s.orchestrator.FormsClient().BatchUpdate(r.Context(), formID, requests)
	if err != nil {
		writeResult(w, formsapi.Failure(err), errorStatus(err))
		return
	}
	writeResult(w, formsapi.Success(map[string]any{
		"form_id": formID,
		"applied": len(requests),
		"result":  result,
	}), http.StatusOK)
}

func writeResult(w http.ResponseWriter, env formsapi.Envelope, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

// errorStatus maps client errors to HTTP status codes: remote errors
// pass through their status, local rate refusals become 429, anything
// else is a bad gateway.
func errorStatus(err error) int {
	var remoteErr *formsapi.RemoteAPIError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode
	}
	var rateErr *formsapi.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}
