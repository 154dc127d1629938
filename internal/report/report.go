package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mintelligence/commodsplit/internal/estimate"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Summary is the result of splitting a commod's production across its centres
type Summary struct {
	Commod        string            `json:"commod" yaml:"commod"`
	HSCode        int64             `json:"hs_code" yaml:"hscode"`
	Centres       []string          `json:"centres" yaml:"centres"`
	Provider      string            `json:"provider" yaml:"provider"`
	Model         string            `json:"model" yaml:"model"`
	Estimate      estimate.Estimate `json:"estimate" yaml:"estimate"`
	TotalTons     float64           `json:"total_tons" yaml:"totaltons"`
	PerCenterTons float64           `json:"per_center_tons" yaml:"percentertons"`
}

// Write renders the summary in the requested format
func Write(w io.Writer, s Summary, format string) error {
	switch format {
	case FormatText, "":
		return writeText(w, s)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatYAML:
		data, err := yaml.Marshal(&s)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeText(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\n------ Production Summary ------\n")
	fmt.Fprintf(&b, "Commod Name: %s\n", s.Commod)
	fmt.Fprintf(&b, "HS Code: %d\n", s.HSCode)
	fmt.Fprintf(&b, "Number of centres: %d\n", len(s.Centres))
	if s.Provider != "" {
		fmt.Fprintf(&b, "Provider: %s (%s)\n", s.Provider, s.Model)
	}
	fmt.Fprintf(&b, "Raw LLM output: %s\n", strings.TrimSpace(s.Estimate.Raw))
	if s.Estimate.Clamped {
		fmt.Fprintf(&b, "Parsed estimate (million tons): %s, replaced by fallback\n", formatPlain(s.Estimate.Parsed))
	}
	fmt.Fprintf(&b, "Total production (LLM, in million tons): %s\n", formatPlain(s.Estimate.Value))
	fmt.Fprintf(&b, "Total production (in tons): %s\n", FormatNumber(s.TotalTons, 0))
	fmt.Fprintf(&b, "Per-centre production (tons): %s\n", FormatNumber(s.PerCenterTons, 2))
	b.WriteString("--------------------------------\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumber formats v with a fixed number of decimals and thousands separators
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatPlain(v)
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	out := humanize.Comma(whole)
	if frac != "" {
		out += "." + frac
	}
	if v < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}
