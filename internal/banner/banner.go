package banner

import (
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Print writes the SafeUrl banner to w.
func Print(w io.Writer, version string) {
	fig := figure.NewFigure("SAFEURL", "doom", true)
	_, _ = color.New(color.FgGreen).Fprint(w, fig.String())

	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
	_, _ = color.New(color.FgHiWhite).Fprintf(w, "    URL redirect resolver and safety checker %s\n", version)
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
}
