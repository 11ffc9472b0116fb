package workload

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a report output format.
type Format string

// Supported report formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// Result is the outcome of one workload line.
type Result struct {
	Line  int    `json:"line" yaml:"line"`
	Input string `json:"input" yaml:"input"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Status is the gateway's HTTP status; zero when nothing was received.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`
	// Response holds the body of lookups answered with 200.
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts results by outcome.
type Summary struct {
	Total int `json:"total" yaml:"total"`
	// Sent counts lines that received an HTTP response of any status.
	Sent int `json:"sent" yaml:"sent"`
	// Invalid counts lines that could not be parsed.
	Invalid int `json:"invalid" yaml:"invalid"`
	// Failed counts lines whose request got no response.
	Failed   int         `json:"failed" yaml:"failed"`
	ByStatus map[int]int `json:"by_status,omitempty" yaml:"by_status,omitempty"`
}

// Report is the full outcome of a workload run, in file order.
type Report struct {
	Results []Result `json:"results" yaml:"results"`
	Summary Summary  `json:"summary" yaml:"summary"`
}

func (r *Report) add(res Result, invalid, failed bool) {
	r.Results = append(r.Results, res)
	r.Summary.Total++
	switch {
	case invalid:
		r.Summary.Invalid++
	case failed:
		r.Summary.Failed++
	default:
		r.Summary.Sent++
		if r.Summary.ByStatus == nil {
			r.Summary.ByStatus = make(map[int]int)
		}
		r.Summary.ByStatus[res.Status]++
	}
}

// Write encodes the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
