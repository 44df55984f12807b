package model

import "time"

// Hop represents a single step in a redirect chain.
type Hop struct {
	Step       int    `json:"step"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
}

// Resolution is the outcome of following the redirects of one URL.
// FinalURL equals OriginalURL when no redirect was followed.
type Resolution struct {
	OriginalURL string        `json:"original_url"`
	FinalURL    string        `json:"final_url"`
	Chain       []Hop         `json:"chain"`
	Succeeded   bool          `json:"succeeded"`
	Error       string        `json:"error,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
}

// RedirectCount returns the number of hops recorded.
func (r Resolution) RedirectCount() int { return len(r.Chain) }

// Finding is a single safety concern raised by one rule against one URL.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	AffectedURL string   `json:"affected_url,omitempty"`
}

// Evaluation is the result of running every registered rule against a URL.
// Findings keep rule registration order, then emission order within a rule.
type Evaluation struct {
	URL       string    `json:"url"`
	Findings  []Finding `json:"findings"`
	Score     int       `json:"score"`
	Status    Status    `json:"status"`
	Succeeded bool      `json:"succeeded"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Analysis pairs the resolution of a URL with the evaluation of its destination.
type Analysis struct {
	ID         string     `json:"id"`
	Resolution Resolution `json:"resolution"`
	Evaluation Evaluation `json:"evaluation"`
}

// IsSafe reports whether the evaluated URL was judged safe.
func (a Analysis) IsSafe() bool { return a.Evaluation.Status == StatusSafe }

// FinalURL returns the destination the resolver reached.
func (a Analysis) FinalURL() string { return a.Resolution.FinalURL }
