package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/formgest/internal/form"
	"github.com/dgallion1/formgest/internal/validate"
)

type validateRequest struct {
	Form              *form.FormStructure `json:"form" validate:"required"`
	Repair            bool                `json:"repair"`
	TruncateQuestions bool                `json:"truncate_questions"`
}

// handleValidate validates a form structure without touching the
// remote service. With repair=true the repaired structure comes back
// alongside the post-repair report.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.check.Struct(req); err != nil {
		jsonError(w, "form is required", http.StatusBadRequest)
		return
	}

	structure := *req.Form
	report := validate.Validate(structure)

	resp := map[string]any{
		"valid":    report.IsValid,
		"issues":   report.Issues,
		"warnings": report.Warnings,
	}

	if req.Repair && !report.IsValid {
		repaired := validate.RepairWith(structure, validate.RepairOptions{
			TruncateQuestions: req.TruncateQuestions,
		})
		report = validate.Validate(repaired)
		resp["valid"] = report.IsValid
		resp["issues"] = report.Issues
		resp["warnings"] = report.Warnings
		resp["form"] = repaired
		resp["repaired"] = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
