package rule

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/selimozcann/safeurl/internal/model"
)

// ThreatListID identifies the threat list rule.
const ThreatListID = "THREAT_LIST"

// ThreatList matches hosts against a local list of known bad domains.
// A listed domain also matches all of its subdomains.
type ThreatList struct {
	domains map[string]struct{}
}

type threatListFile struct {
	Domains []string `yaml:"domains"`
}

// NewThreatList builds a ThreatList from domain names.
func NewThreatList(domains []string) *ThreatList {
	tl := &ThreatList{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.Trim(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			tl.domains[d] = struct{}{}
		}
	}
	return tl
}

// LoadThreatList reads a threat list file. Files ending in .yaml or .yml hold
// a "domains" sequence; anything else is one domain per line with # comments.
func LoadThreatList(path string) (*ThreatList, error) {
	f, err := os.Open(path) //nolint:gosec // user supplied list
	if err != nil {
		return nil, fmt.Errorf("open threat list: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var tf threatListFile
		if err := yaml.NewDecoder(f).Decode(&tf); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse threat list %q: %w", path, err)
		}
		return NewThreatList(tf.Domains), nil
	default:
		domains, err := readLines(f)
		if err != nil {
			return nil, fmt.Errorf("read threat list %q: %w", path, err)
		}
		return NewThreatList(domains), nil
	}
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}

// Len returns the number of listed domains.
func (r *ThreatList) Len() int { return len(r.domains) }

func (r *ThreatList) ID() string { return ThreatListID }
func (r *ThreatList) Name() string { return "Threat List Check" }
func (r *ThreatList) Description() string { return "Checks URL against known malicious URL databases" }

func (r *ThreatList) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	h, ok := host(rawURL)
	if !ok || h == "" {
		return nil, nil
	}
	for d := h; d != ""; {
		if _, listed := r.domains[d]; listed {
			return []model.Finding{finding(ThreatListID, model.SeverityCritical, rawURL,
				"Domain %s is listed in threat list", d)}, nil
		}
		_, rest, found := strings.Cut(d, ".")
		if !found {
			break
		}
		d = rest
	}
	return nil, nil
}
