package entities

import "time"

// ScenarioStatus represents the outcome of one scenario run
type ScenarioStatus string

const (
	ScenarioStatusPending ScenarioStatus = "pending"
	ScenarioStatusRunning ScenarioStatus = "running"
	ScenarioStatusPassed  ScenarioStatus = "passed"
	ScenarioStatusFailed  ScenarioStatus = "failed"
	ScenarioStatusSkipped ScenarioStatus = "skipped"
)

// Artifacts are the diagnostic files produced for a scenario
type Artifacts struct {
	Trace      string `json:"trace,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	VideoDir   string `json:"video_dir,omitempty"`
}

// ScenarioResult is the persisted outcome of a scenario
type ScenarioResult struct {
	Name      string         `json:"name"`
	Status    ScenarioStatus `json:"status"`
	Kind      string         `json:"kind,omitempty"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Artifacts Artifacts      `json:"artifacts"`
}

// RunReport aggregates a whole run
type RunReport struct {
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Driver    string           `json:"driver"`
	BaseURL   string           `json:"base_url"`
	Results   []ScenarioResult `json:"results"`
}

// Failed counts failed scenarios
func (r RunReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ScenarioStatusFailed {
			n++
		}
	}
	return n
}
