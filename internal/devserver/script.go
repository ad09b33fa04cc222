package devserver

import (
	"fmt"
	"os"
	"time"

	"github.com/tinytelemetry/subwatch/internal/model"
	"gopkg.in/yaml.v3"
)

// Script is a fixture describing what the fake backend serves.
//
//	initial:
//	  count: 42
//	  problem_id: "25057"
//	refreshes:
//	  - snapshot: {count: 43}
//	  - fail: true
//	    snapshot: {error: "Website is blocking requests (403 Forbidden).", status: blocked}
//	  - status_code: 503
type Script struct {
	// Initial is served by GET /api/count until a refresh succeeds.
	Initial model.Snapshot `yaml:"initial"`
	// CountStatusCode, when non-zero, makes GET /api/count fail with that status.
	CountStatusCode int `yaml:"count_status_code"`
	// Refreshes are consumed in order by POST /api/refresh; the last one repeats.
	Refreshes []Step `yaml:"refreshes"`
}

// Step is the outcome of one POST /api/refresh.
type Step struct {
	// Snapshot becomes the current state. On a failed step it is what
	// GET /api/count reports afterwards, matching a backend that records the
	// scrape error without returning data.
	Snapshot *model.Snapshot `yaml:"snapshot"`
	// Fail answers {success: false}.
	Fail bool `yaml:"fail"`
	// Message is echoed in the response message field.
	Message string `yaml:"message"`
	// StatusCode, when non-zero, answers with that HTTP status and no payload.
	StatusCode int `yaml:"status_code"`
	// Delay holds the response back, for exercising in-progress states.
	Delay time.Duration `yaml:"delay"`
}

// LoadScript reads a YAML fixture from path.
func LoadScript(path string) (Script, error) {
	var s Script
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("devserver: read script: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("devserver: parse script %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects status codes that are not HTTP errors.
func (s Script) Validate() error {
	if s.CountStatusCode != 0 && (s.CountStatusCode < 400 || s.CountStatusCode > 599) {
		return fmt.Errorf("devserver: count_status_code %d is not an error status", s.CountStatusCode)
	}
	for i, step := range s.Refreshes {
		if step.StatusCode != 0 && (step.StatusCode < 400 || step.StatusCode > 599) {
			return fmt.Errorf("devserver: refreshes[%d].status_code %d is not an error status", i, step.StatusCode)
		}
		if step.Delay < 0 {
			return fmt.Errorf("devserver: refreshes[%d].delay must not be negative", i)
		}
	}
	return nil
}

// DefaultScript is served when no fixture file is given.
func DefaultScript() Script {
	return Script{
		Initial: model.Snapshot{
			Count:     model.Int64(42),
			ProblemID: model.String("25057"),
		},
		Refreshes: []Step{
			{Snapshot: &model.Snapshot{Count: model.Int64(43)}},
			{
				Fail:    true,
				Message: "Failed to refresh count",
				Snapshot: &model.Snapshot{
					Count:  model.Int64(43),
					Error:  "Website is blocking requests (403 Forbidden). This is likely due to anti-bot measures.",
					Status: model.StatusBlocked,
				},
			},
			{Snapshot: &model.Snapshot{Count: model.Int64(44)}},
		},
	}
}
