package harness

import (
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/store"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Run is the stored run, digest included.
	Run store.Run `json:"run"`

	// Records are the decisions in sequence order.
	Records []trace.Record `json:"records"`

	// Summary is the stored run summary.
	Summary store.Summary `json:"summary"`

	// Errors contains assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Placed is what the placement wrote into the world.
	Placed placement.Result `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Records: []trace.Record{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
