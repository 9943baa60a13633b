package plugin

// Status is the result of one manifest entry
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome records what happened to one entry. Action is empty when the
// package failed before any entry ran.
type Outcome struct {
	Package string
	Action  string
	Status  Status
	Err     error
}

// Report collects the outcomes of one event run
type Report struct {
	Event    string
	RunID    string
	Outcomes []Outcome
	// Aborted lists packages whose remaining actions were skipped
	Aborted []string
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Failed reports whether any entry failed
func (r *Report) Failed() bool {
	return len(r.Failures()) > 0
}

// Failures returns the failed outcomes in run order
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Count returns how many outcomes have status s
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
