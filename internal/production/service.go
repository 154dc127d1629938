package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mintelligence/commodsplit/internal/estimate"
	"github.com/mintelligence/commodsplit/internal/providers"
	"github.com/mintelligence/commodsplit/internal/report"
	"github.com/mintelligence/commodsplit/internal/tables"
)

// ErrNoCommod is returned when no commod name was given
var ErrNoCommod = errors.New("commod name is required")

// Options configures a Service
type Options struct {
	Source       tables.Source
	Provider     providers.Provider
	ProviderName string
	Model        string
	Temperature  float64
	Policy       estimate.Policy
}

// Service estimates a commod's total production and splits it across its centres
type Service struct {
	opts Options
}

// NewService returns a Service
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// NormalizeCommod trims and lower-cases a commod name as typed by a user
func NormalizeCommod(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Split looks the commod up, asks the provider for its total production and
// divides it evenly across the centres producing it.
// The provider is only called once the commod and at least one centre are found.
func (s *Service) Split(ctx context.Context, commod string) (report.Summary, error) {
	name := NormalizeCommod(commod)
	if name == "" {
		return report.Summary{}, ErrNoCommod
	}

	idx, err := tables.Load(ctx, s.opts.Source)
	if err != nil {
		return report.Summary{}, err
	}

	c, err := idx.Lookup(name)
	if err != nil {
		return report.Summary{}, fmt.Errorf("commod '%s' not found in commods table: %w", name, err)
	}

	centres := idx.Centres(c.HSCode)
	if len(centres) == 0 {
		return report.Summary{}, fmt.Errorf("no centres found producing %s: %w", name, estimate.ErrZeroCenters)
	}
	slog.Info("Found centres", "commod", name, "hs_code", c.HSCode, "centres", len(centres))

	raw, err := s.opts.Provider.ExtractText(ctx, providers.Config{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		Prompt:      estimate.Prompt(name),
	})
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to get production estimate: %w", err)
	}
	slog.Debug("Raw LLM output", "provider", s.opts.ProviderName, "model", s.opts.Model, "output", raw)

	est, err := s.opts.Policy.Extract(raw)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to extract production estimate from %q: %w", raw, err)
	}

	totalTons := estimate.Tons(est.Value)
	perCenter, err := estimate.Split(totalTons, len(centres))
	if err != nil {
		return report.Summary{}, err
	}

	return report.Summary{
		Commod:        name,
		HSCode:        c.HSCode,
		Centres:       centres,
		Provider:      s.opts.ProviderName,
		Model:         s.opts.Model,
		Estimate:      est,
		TotalTons:     totalTons,
		PerCenterTons: perCenter,
	}, nil
}
