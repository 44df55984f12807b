// Package score turns a set of findings into a numeric score and a status.
package score

import "github.com/selimozcann/safeurl/internal/model"

// Baseline is the score of a URL with no findings.
const Baseline = 100

// Status thresholds: below Unsafe is unsafe, below Suspicious is suspicious.
const (
	UnsafeBelow     = 50
	SuspiciousBelow = 80
)

// Penalty returns the points subtracted for one finding of the given severity.
func Penalty(sev model.Severity) int {
	switch sev {
	case model.SeverityLow:
		return 5
	case model.SeverityMedium:
		return 15
	case model.SeverityHigh:
		return 30
	case model.SeverityCritical:
		return 50
	default:
		return 0
	}
}

// Score starts at Baseline, subtracts a penalty per finding and clamps at 0.
func Score(findings []model.Finding) int {
	s := Baseline
	for _, f := range findings {
		s -= Penalty(f.Severity)
	}
	return max(s, 0)
}

// Status maps findings and their score to a verdict. A critical finding is
// always malicious and a high finding always unsafe, whatever the score.
// It never returns model.StatusUnknown.
func Status(findings []model.Finding, score int) model.Status {
	worst, ok := MaxSeverity(findings)
	switch {
	case ok && worst == model.SeverityCritical:
		return model.StatusMalicious
	case ok && worst == model.SeverityHigh:
		return model.StatusUnsafe
	case score < UnsafeBelow:
		return model.StatusUnsafe
	case score < SuspiciousBelow:
		return model.StatusSuspicious
	default:
		return model.StatusSafe
	}
}

// MaxSeverity returns the worst severity present, false when there are no
// findings.
func MaxSeverity(findings []model.Finding) (model.Severity, bool) {
	if len(findings) == 0 {
		return model.SeverityInfo, false
	}
	worst := findings[0].Severity
	for _, f := range findings[1:] {
		if f.Severity > worst {
			worst = f.Severity
		}
	}
	return worst, true
}
