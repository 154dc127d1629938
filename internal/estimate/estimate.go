// Package estimate turns free-form model answers into validated production figures.
package estimate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultCeiling is the largest annual production, in million tons, accepted as plausible.
	DefaultCeiling = 500.0
	// DefaultFallback replaces any estimate above the ceiling.
	DefaultFallback = 145.0
	// TonsPerMillion converts million tons to tons.
	TonsPerMillion = 1_000_000
)

var (
	// ErrNoNumericContent is returned when the model output has no digit or period.
	ErrNoNumericContent = errors.New("model output contains no numeric content")
	// ErrMalformedNumber is returned when the extracted token is not a valid decimal.
	ErrMalformedNumber = errors.New("model output is not a valid decimal number")
	// ErrZeroCenters is returned when production is split across no centers.
	ErrZeroCenters = errors.New("no centers to split production across")
)

// Policy holds the plausibility bounds applied to an extracted estimate
type Policy struct {
	Ceiling  float64
	Fallback float64
}

// DefaultPolicy returns the policy with DefaultCeiling and DefaultFallback
func DefaultPolicy() Policy {
	return Policy{Ceiling: DefaultCeiling, Fallback: DefaultFallback}
}

// Estimate is the outcome of extracting a production figure from model output
type Estimate struct {
	Raw     string  `json:"raw" yaml:"raw"`
	Token   string  `json:"token" yaml:"token"`
	Parsed  float64 `json:"parsed" yaml:"parsed"`
	Value   float64 `json:"value" yaml:"value"`
	Clamped bool    `json:"clamped" yaml:"clamped"`
}

// Extract pulls a production estimate in million tons out of raw model text.
// Every ASCII digit and period in the text is concatenated, in order, into a single
// token, so text with several numbers ("140-150") yields one fused number.
func Extract(raw string, ceiling, fallback float64) (float64, error) {
	est, err := Policy{Ceiling: ceiling, Fallback: fallback}.Extract(raw)
	if err != nil {
		return 0, err
	}
	return est.Value, nil
}

// Extract applies the policy to raw model text, see the package-level Extract
func (p Policy) Extract(raw string) (Estimate, error) {
	est := Estimate{Raw: raw, Token: numericToken(raw)}
	if est.Token == "" {
		return est, ErrNoNumericContent
	}

	value, err := strconv.ParseFloat(est.Token, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) || !math.IsInf(value, 1) {
			return est, fmt.Errorf("%w: %q", ErrMalformedNumber, est.Token)
		}
		// Saturate overflow so the estimate stays encodable; the ceiling check replaces it.
		value = math.MaxFloat64
	}
	est.Parsed = value
	est.Value = value

	if value > p.Ceiling {
		slog.Warn("Estimate seems too high, using fallback",
			"token", est.Token,
			"ceiling", p.Ceiling,
			"fallback", p.Fallback)
		est.Value = p.Fallback
		est.Clamped = true
	}

	return est, nil
}

func numericToken(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Tons converts million tons to tons
func Tons(totalMillionTons float64) float64 {
	return totalMillionTons * TonsPerMillion
}

// Split divides a total in tons evenly across centers
func Split(totalTons float64, centers int) (float64, error) {
	if centers <= 0 {
		return 0, ErrZeroCenters
	}
	return totalTons / float64(centers), nil
}

// PerCenter converts a total in million tons to tons and splits it across centers
func PerCenter(totalMillionTons float64, centers int) (float64, error) {
	return Split(Tons(totalMillionTons), centers)
}
