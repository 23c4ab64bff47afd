// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/bocagrande/semmap/internal/graph"
)

// ExecValidator runs an external checker command, feeding it the graph
// as Turtle on stdin and reading a JSON ValidationReport from stdout.
// This is the shape both a SHACL runner and a reasoner wrapper expose.
type ExecValidator struct {
	// Command is the argv of the external checker, e.g.
	// ["java", "-jar", "HermiT.jar", "--stdin"].
	Command []string
	Logger  *slog.Logger
}

// NewExecValidator builds an ExecValidator for the given argv.
func NewExecValidator(command []string, logger *slog.Logger) *ExecValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecValidator{Command: command, Logger: logger}
}

// Validate serializes the graph, invokes the command and decodes its
// report. A non-decodable or failing run is a collaborator failure,
// never an unsatisfiable result.
func (v *ExecValidator) Validate(ctx context.Context, g *graph.Graph) (ValidationReport, error) {
	if len(v.Command) == 0 {
		return ValidationReport{}, fmt.Errorf("no validator command configured")
	}

	var ttl bytes.Buffer
	if err := graph.WriteTurtle(&ttl, g); err != nil {
		return ValidationReport{}, fmt.Errorf("serialize graph: %w", err)
	}

	cmd := exec.CommandContext(ctx, v.Command[0], v.Command[1:]...)
	cmd.Stdin = &ttl
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	v.Logger.Debug("invoking external validator", slog.String("command", v.Command[0]))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ValidationReport{}, ctx.Err()
		}
		return ValidationReport{}, fmt.Errorf("validator command failed: %w: %s", err, stderr.String())
	}

	var report ValidationReport
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		return ValidationReport{}, fmt.Errorf("decode validator report: %w", err)
	}
	if report.Logs == "" {
		report.Logs = stderr.String()
	}
	return report, nil
}
