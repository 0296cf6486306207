package events

const (
	StreamName   = "ECHELON_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRunStarted(runID string) string   { return "echelon.run." + runID + ".started" }
func SubjectRunCompleted(runID string) string { return "echelon.run." + runID + ".completed" }
func SubjectRunFailed(runID string) string    { return "echelon.run." + runID + ".failed" }

// RunEvent is the payload published on run lifecycle subjects.
type RunEvent struct {
	RunID          string `json:"run_id"`
	Mode           string `json:"mode"`
	PopulationSize int    `json:"population_size,omitempty"`
	MaxLayer       int    `json:"max_layer,omitempty"`
	Error          string `json:"error,omitempty"`
}
