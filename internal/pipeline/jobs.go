package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/formgest/internal/form"
)

// JobStatus represents the state of a synthesis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusExtracting JobStatus = "extracting"
	StatusValidating JobStatus = "validating"
	StatusCompiling  JobStatus = "compiling"
	StatusSubmitting JobStatus = "submitting"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document-to-form synthesis run.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"` // optional override

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	FormID       string `json:"form_id,omitempty"`
	FormURL      string `json:"form_url,omitempty"`
	ResponderURI string `json:"responder_uri,omitempty"`

	Report      *form.ValidationReport `json:"validation,omitempty"`
	ContentHash string                 `json:"content_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData          []byte
	settings          map[string]any
	truncateQuestions bool
	errors            []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error message.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult records the created remote form identity.
func (j *Job) SetResult(formID, formURL, responderURI string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.FormID = formID
	j.FormURL = formURL
	j.ResponderURI = responderURI
	j.UpdatedAt = time.Now()
}

// SetReport records the latest validation report.
func (j *Job) SetReport(r form.ValidationReport) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Report = &r
	j.UpdatedAt = time.Now()
}

// SetContentHash records the compile-cache key used for this run.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetSettings records the form settings dictionary to apply after
// submission.
func (j *Job) SetSettings(settings map[string]any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.settings = settings
}

// SetTruncateQuestions opts in to dropping questions past the remote
// limit during repair.
func (j *Job) SetTruncateQuestions(v bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.truncateQuestions = v
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string                 `json:"job_id"`
	Filename     string                 `json:"filename"`
	Status       JobStatus              `json:"status"`
	Phase        string                 `json:"phase"`
	FormID       string                 `json:"form_id,omitempty"`
	FormURL      string                 `json:"form_url,omitempty"`
	ResponderURI string                 `json:"responder_uri,omitempty"`
	Report       *form.ValidationReport `json:"validation,omitempty"`
	ContentHash  string                 `json:"content_hash,omitempty"`
	Errors       []string               `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.errors
	if errs == nil {
		errs = []string{}
	} else {
		errs = append([]string(nil), errs...)
	}
	var report *form.ValidationReport
	if j.Report != nil {
		r := *j.Report
		report = &r
	}
	return JobSnapshot{
		ID:           j.ID,
		Filename:     j.Filename,
		Status:       j.Status,
		Phase:        j.Phase,
		FormID:       j.FormID,
		FormURL:      j.FormURL,
		ResponderURI: j.ResponderURI,
		Report:       report,
		ContentHash:  j.ContentHash,
		Errors:       errs,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
