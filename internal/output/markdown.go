package output

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/selimozcann/safeurl/internal/model"
)

// WriteMarkdown writes a Markdown report covering every analysis.
func WriteMarkdown(w io.Writer, results []model.Analysis) error {
	md := markdown.NewMarkdown(w)
	md.H1("SafeUrl Report")
	md.PlainText("")

	sum := BuildSummary(results)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URLs", strconv.Itoa(sum.Total)},
			{"With findings", strconv.Itoa(sum.WithFindings)},
			{"Unsafe or malicious", strconv.Itoa(sum.Unsafe)},
			{"Errors", strconv.Itoa(sum.Errors)},
		},
	})
	md.PlainText("")

	for _, a := range results {
		writeMarkdownAnalysis(md, a)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by SafeUrl at %s*", time.Now().UTC().Format(time.RFC3339))
	return md.Build()
}

func writeMarkdownAnalysis(md *markdown.Markdown, a model.Analysis) {
	md.H2(a.Resolution.OriginalURL)
	md.PlainText("")

	rows := [][]string{
		{"Final URL", "`" + a.Resolution.FinalURL + "`"},
		{"Redirect type", string(DetermineType(a.Resolution))},
		{"Hops", strconv.Itoa(len(a.Resolution.Chain))},
		{"Score", strconv.Itoa(a.Evaluation.Score) + "/100"},
		{"Status", statusLabel(a.Evaluation.Status)},
		{"Analysis ID", a.ID},
	}
	if a.Resolution.Error != "" {
		rows = append(rows, []string{"Resolve error", a.Resolution.Error})
	}
	if a.Evaluation.Error != "" {
		rows = append(rows, []string{"Check error", a.Evaluation.Error})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	writeMarkdownVerdict(md, a.Evaluation)

	if len(a.Resolution.Chain) > 0 {
		md.PlainText("### Redirect chain")
		md.PlainText("")
		chain := make([][]string, len(a.Resolution.Chain))
		for i, hop := range a.Resolution.Chain {
			chain[i] = []string{strconv.Itoa(hop.Step), "`" + hop.URL + "`", strconv.Itoa(hop.StatusCode)}
		}
		md.Table(markdown.TableSet{Header: []string{"#", "URL", "Status"}, Rows: chain})
		md.PlainText("")
	}

	md.PlainText("### Findings")
	md.PlainText("")
	if len(a.Evaluation.Findings) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}
	findings := make([][]string, len(a.Evaluation.Findings))
	for i, f := range a.Evaluation.Findings {
		findings[i] = []string{f.RuleID, severityLabel(f.Severity), f.Description}
	}
	md.Table(markdown.TableSet{Header: []string{"Rule", "Severity", "Description"}, Rows: findings})
	md.PlainText("")
}

func writeMarkdownVerdict(md *markdown.Markdown, ev model.Evaluation) {
	switch ev.Status {
	case model.StatusMalicious:
		md.Cautionf("Malicious URL. %d finding(s), score %d/100.", len(ev.Findings), ev.Score)
	case model.StatusUnsafe:
		md.Warningf("Unsafe URL. %d finding(s), score %d/100.", len(ev.Findings), ev.Score)
	case model.StatusSuspicious:
		md.Importantf("Suspicious URL. %d finding(s), score %d/100.", len(ev.Findings), ev.Score)
	case model.StatusSafe:
		if len(ev.Findings) > 0 {
			md.Note("Only minor findings detected.")
		} else {
			md.Tip("No safety issues detected.")
		}
	default:
		md.Note("The safety check did not complete.")
	}
	md.PlainText("")
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusSafe:
		return "✅ Safe"
	case model.StatusSuspicious:
		return "🟡 Suspicious"
	case model.StatusUnsafe:
		return "🟠 Unsafe"
	case model.StatusMalicious:
		return "🔴 Malicious"
	default:
		return "⚪ Unknown"
	}
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🔴 Critical"
	case model.SeverityHigh:
		return "🟠 High"
	case model.SeverityMedium:
		return "🟡 Medium"
	case model.SeverityLow:
		return "🔵 Low"
	default:
		return "⚪ Info"
	}
}
