package output

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/resolver"
	"github.com/selimozcann/safeurl/internal/util"
)

// RedirectType classifies where a redirect chain ended up.
type RedirectType string

const (
	RedirectTypeError       RedirectType = "error"
	RedirectTypeDirect      RedirectType = "direct"
	RedirectTypeSameDomain  RedirectType = "same_domain"
	RedirectTypeCrossDomain RedirectType = "cross_domain"
)

// Record is the flat JSON form of one analysis.
type Record struct {
	ID            string          `json:"id"`
	InputURL      string          `json:"input_url"`
	FinalURL      string          `json:"final_url"`
	Type          RedirectType    `json:"type"`
	RedirectChain []string        `json:"redirect_chain"`
	HopCount      int             `json:"hop_count"`
	StatusCode    int             `json:"status_code"`
	Score         int             `json:"score"`
	Status        model.Status    `json:"status"`
	Findings      []model.Finding `json:"findings"`
	ResolveError  string          `json:"resolve_error,omitempty"`
	CheckError    string          `json:"check_error,omitempty"`
	ElapsedMs     int64           `json:"elapsed_ms"`
	CheckedAt     string          `json:"checked_at"`
}

// BuildRecord converts an analysis into a Record.
func BuildRecord(a model.Analysis) Record {
	res := a.Resolution
	chain := make([]string, len(res.Chain))
	status := 0
	for i, hop := range res.Chain {
		chain[i] = hop.URL
		status = hop.StatusCode
	}
	findings := append([]model.Finding{}, a.Evaluation.Findings...)

	rec := Record{
		ID:            a.ID,
		InputURL:      res.OriginalURL,
		FinalURL:      res.FinalURL,
		Type:          DetermineType(res),
		RedirectChain: chain,
		HopCount:      len(res.Chain),
		StatusCode:    status,
		Score:         a.Evaluation.Score,
		Status:        a.Evaluation.Status,
		Findings:      findings,
		ResolveError:  res.Error,
		CheckError:    a.Evaluation.Error,
		ElapsedMs:     res.Elapsed.Milliseconds(),
	}
	if !a.Evaluation.CheckedAt.IsZero() {
		rec.CheckedAt = a.Evaluation.CheckedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

// DetermineType classifies a resolution. A failed resolution is an error;
// a chain without a followed redirect is direct; otherwise the registrable
// domains of the original and final URLs decide.
func DetermineType(res model.Resolution) RedirectType {
	if !res.Succeeded {
		return RedirectTypeError
	}
	if !hasRedirectHop(res.Chain) {
		return RedirectTypeDirect
	}
	if util.SameBaseDomain(res.OriginalURL, res.FinalURL) {
		return RedirectTypeSameDomain
	}
	return RedirectTypeCrossDomain
}

func hasRedirectHop(chain []model.Hop) bool {
	for _, hop := range chain {
		if resolver.IsRedirect(hop.StatusCode) {
			return true
		}
	}
	return false
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if records == nil {
		records = []Record{}
	}
	return enc.Encode(records)
}

// WriteJSONL writes each record as a JSON line to w.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
