// Package validation evaluates FieldConstraints against records and turns
// each (record, constraint) pair into a ValidationResult. A record that
// breaks a rule is data, not an error; errors are reserved for constraints
// that cannot be evaluated at all.
package validation

import (
	"runtime"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
)

// Context carries the inputs that live outside the batch.
type Context struct {
	// ParentKeySets holds named key sets for referential constraints.
	ParentKeySets map[string][]domain.Value
	// ReferenceTime is "now" for timeliness checks. Zero means the wall
	// clock at the start of the run.
	ReferenceTime time.Time
	// Workers bounds the goroutines evaluating records. Zero means
	// GOMAXPROCS.
	Workers int
}

func (c Context) referenceTime() time.Time {
	if c.ReferenceTime.IsZero() {
		return time.Now()
	}
	return c.ReferenceTime
}

func (c Context) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
