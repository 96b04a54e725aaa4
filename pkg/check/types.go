// Package check builds lintkit-check documents, the structured summary
// format fo and other dashboards read for lint-style gates.
package check

// SchemaID is the identifier for lintkit-check format.
const SchemaID = "lintkit-check"

// Report represents a lintkit-check document.
type Report struct {
	Schema  string   `json:"$schema"`
	Tool    string   `json:"tool"`
	Status  string   `json:"status"` // "pass", "warn", "fail"
	Summary string   `json:"summary"`
	Metrics []Metric `json:"metrics,omitempty"`
	Items   []Item   `json:"items,omitempty"`
}

// Metric represents a single metric measurement.
type Metric struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold,omitempty"`
	Unit      string  `json:"unit,omitempty"`
}

// Item represents a single finding.
type Item struct {
	Severity string `json:"severity"` // "warning"
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
	File     string `json:"file,omitempty"`
	Message  string `json:"message,omitempty"`
}

const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"

	SeverityWarning = "warning"
)
