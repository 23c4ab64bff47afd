// SPDX-License-Identifier: Apache-2.0

// Package gateway is the boundary to external consistency checking: a
// SHACL engine and a description-logic reasoner consumed as opaque
// collaborators. The engine only hands a finished graph across and
// reads the report back; no constraint logic lives here.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/bocagrande/semmap/internal/graph"
)

// Violation is one constraint failure reported by the external checker.
type Violation struct {
	Identity string `json:"identity"`
	Property string `json:"property,omitempty"`
	Message  string `json:"message"`
}

// ValidationReport is the outcome of one external validation call.
// Satisfiable false is a legitimate negative result, distinct from a
// collaborator outage (which surfaces as an error instead).
type ValidationReport struct {
	Satisfiable bool        `json:"satisfiable"`
	Conforms    bool        `json:"conforms"`
	Violations  []Violation `json:"violations,omitempty"`
	Logs        string      `json:"logs,omitempty"`
}

// Validator is the external validation boundary.
type Validator interface {
	Validate(ctx context.Context, g *graph.Graph) (ValidationReport, error)
}

// ErrValidationTimeout reports that the external validator did not
// answer within the caller-supplied timeout. The already-assembled
// graph stays intact; only the report is missing.
var ErrValidationTimeout = errors.New("external validation timed out")

// ValidateWithTimeout calls v under a deadline. A deadline hit maps to
// ErrValidationTimeout; any other error is a collaborator failure.
func ValidateWithTimeout(ctx context.Context, v Validator, g *graph.Graph, timeout time.Duration) (ValidationReport, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report, err := v.Validate(ctx, g)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ValidationReport{}, ErrValidationTimeout
		}
		return ValidationReport{}, err
	}
	return report, nil
}
