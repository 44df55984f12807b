package output

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/resolver"
)

// Printer writes human readable, coloured results.
type Printer struct {
	w      io.Writer
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
	bold   *color.Color
}

// NewPrinter returns a Printer writing to w. With noColor set no escape
// sequences are emitted.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:      w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.green, p.yellow, p.red, p.gray, p.bold} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) statusColor(status int) *color.Color {
	switch {
	case status == 0:
		return p.gray
	case resolver.IsRedirect(status):
		return p.green
	case status == http.StatusOK:
		return p.yellow
	case status >= 400:
		return p.red
	default:
		return p.yellow
	}
}

func (p *Printer) verdictColor(s model.Status) *color.Color {
	switch s {
	case model.StatusSafe:
		return p.green
	case model.StatusSuspicious:
		return p.yellow
	case model.StatusUnsafe, model.StatusMalicious:
		return p.red
	default:
		return p.gray
	}
}

func (p *Printer) severityColor(s model.Severity) *color.Color {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return p.red
	case model.SeverityMedium:
		return p.yellow
	default:
		return p.gray
	}
}

// PrintResolution prints the redirect chain of res.
func (p *Printer) PrintResolution(res model.Resolution) {
	_, _ = p.bold.Fprintf(p.w, "[+] Resolving: %s\n", res.OriginalURL)
	for _, hop := range res.Chain {
		fmt.Fprintf(p.w, "  [%d] %s %s\n", hop.Step, hop.URL, p.statusColor(hop.StatusCode).Sprint(hop.StatusCode))
	}
	if !res.Succeeded {
		_, _ = p.red.Fprintf(p.w, "  [!] Error at %s: %s\n", res.FinalURL, res.Error)
		return
	}
	_, _ = p.green.Fprintf(p.w, "  ✔ Final URL: %s\n", res.FinalURL)
	if t := DetermineType(res); t == RedirectTypeCrossDomain {
		_, _ = p.yellow.Fprintf(p.w, "  ↪ Redirected to a different domain\n")
	}
	fmt.Fprintf(p.w, "  %d hop(s) in %dms\n", len(res.Chain), res.Elapsed.Milliseconds())
}

// PrintEvaluation prints the verdict and findings of ev.
func (p *Printer) PrintEvaluation(ev model.Evaluation) {
	_, _ = p.bold.Fprintf(p.w, "[+] Checking: %s\n", ev.URL)
	if !ev.Succeeded {
		_, _ = p.red.Fprintf(p.w, "  [!] %s\n", ev.Error)
		return
	}
	if len(ev.Findings) == 0 {
		fmt.Fprintln(p.w, "  Findings: none")
	} else {
		fmt.Fprintln(p.w, "  Findings:")
		for _, f := range ev.Findings {
			label := p.severityColor(f.Severity).Sprintf("%-8s", f.Severity)
			fmt.Fprintf(p.w, "  - %s %s: %s\n", label, f.RuleID, f.Description)
		}
	}
	verdict := p.verdictColor(ev.Status).Sprint(ev.Status)
	fmt.Fprintf(p.w, "  Score: %d/100  Status: %s\n", ev.Score, verdict)
}

// PrintAnalysis prints the chain followed by the evaluation.
func (p *Printer) PrintAnalysis(a model.Analysis) {
	p.PrintResolution(a.Resolution)
	p.PrintEvaluation(a.Evaluation)
	fmt.Fprintln(p.w, p.gray.Sprintf("  id %s", a.ID))
}
