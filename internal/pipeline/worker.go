package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/formgest/internal/compile"
	"github.com/dgallion1/formgest/internal/extract"
	"github.com/dgallion1/formgest/internal/formsapi"
	"github.com/dgallion1/formgest/internal/parser"
	"github.com/dgallion1/formgest/internal/validate"
)

// Worker processes a single synthesis job.
type Worker struct {
	client      *formsapi.Client
	cache       *compile.Cache
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(client *formsapi.Client, cache *compile.Cache, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		client:      client,
		cache:       cache,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full synthesis pipeline for a job: parse, extract,
// validate (repairing once if needed), compile, submit.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	structure := extract.FromDocument(doc)
	if job.Title != "" {
		structure.Title = job.Title
	}
	log.Info("extraction complete", "questions", len(structure.Questions))

	// Phase 3: Validate, repairing once if the structure is broken.
	job.SetStatus(StatusValidating, "validating")
	report := validate.Validate(structure)
	if !report.IsValid {
		log.Info("structure invalid, repairing", "issues", len(report.Issues))
		structure = validate.RepairWith(structure, validate.RepairOptions{
			TruncateQuestions: job.truncateQuestions,
		})
		report = validate.Validate(structure)
	}
	job.SetReport(report)
	if !report.IsValid {
		log.Error("structure invalid after repair", "issues", len(report.Issues))
		for _, issue := range report.Issues {
			job.AddError(issue)
		}
		job.SetStatus(StatusFailed, "validating")
		return
	}

	// Phase 4: Compile
	job.SetStatus(StatusCompiling, "compiling")
	batch, hash, err := w.cache.Compile(structure)
	if err != nil {
		log.Error("compile failed", "error", err)
		job.AddError(fmt.Sprintf("compile: %s", err))
		job.SetStatus(StatusFailed, "compiling")
		return
	}
	job.SetContentHash(hash)

	// Phase 5: Submit. Creation takes the title only; description,
	// items and settings follow in one batch update.
	job.SetStatus(StatusSubmitting, "submitting")
	info, err := w.createForm(ctx, log, structure.Title)
	if err != nil {
		log.Error("create form failed", "error", err)
		job.AddError(fmt.Sprintf("create form: %s", err))
		job.SetStatus(StatusFailed, "submitting")
		return
	}
	job.SetResult(info.FormID, editURL(info.FormID), info.ResponderURI)
	log = log.With("form_id", info.FormID)

	requests := []map[string]any{
		formsapi.InfoUpdateRequest(structure.Title, structure.Description),
	}
	itemRequests, err := formsapi.Requests(batch)
	if err != nil {
		log.Error("request build failed", "error", err)
		job.AddError(fmt.Sprintf("build requests: %s", err))
		job.SetStatus(StatusPartial, "submitting")
		return
	}
	requests = append(requests, itemRequests...)
	requests = append(requests, formsapi.SettingsRequests(job.settings)...)

	if err := w.batchUpdate(ctx, log, info.FormID, requests); err != nil {
		log.Error("batch update failed", "error", err)
		job.AddError(fmt.Sprintf("batch update: %s", err))
		job.SetStatus(StatusPartial, "submitting")
		return
	}

	log.Info("form created", "items", len(batch))
	job.SetStatus(StatusCompleted, "done")
}

// createForm creates the remote form, retrying rate-limit and server
// errors with backoff.
func (w *Worker) createForm(ctx context.Context, log *slog.Logger, title string) (*formsapi.FormInfo, error) {
	var info *formsapi.FormInfo
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		info, lastErr = w.client.CreateForm(ctx, title)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable create error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return info, nil
}

// batchUpdate submits the compiled requests, retrying like createForm.
func (w *Worker) batchUpdate(ctx context.Context, log *slog.Logger, formID string, requests []map[string]any) error {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		_, lastErr = w.client.BatchUpdate(ctx, formID, requests)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable batch error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

// editURL is the editor link for a created form.
func editURL(formID string) string {
	return fmt.Sprintf("https://docs.google.com/forms/d/%s/edit", formID)
}
