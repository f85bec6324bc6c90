package enrollment

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/happyinline/inline-backend/pkg/logger"
)

// compensation is one typed undo action registered by a completed saga step.
type compensation struct {
	step string
	run  func(ctx context.Context) error
}

// saga accumulates compensating actions as mutating steps succeed. On
// failure the actions run in reverse registration order; every undo is
// attempted even when an earlier one fails, with the errors aggregated.
type saga struct {
	comps []compensation
}

func (s *saga) register(step string, run func(ctx context.Context) error) {
	s.comps = append(s.comps, compensation{step: step, run: run})
}

func (s *saga) compensate(ctx context.Context, logg *logger.Logger) error {
	var errs error
	for i := len(s.comps) - 1; i >= 0; i-- {
		comp := s.comps[i]
		if err := comp.run(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("compensate %s: %w", comp.step, err))
			if logg != nil {
				logg.Error(ctx, "enrollment compensation failed: "+comp.step, err)
			}
			continue
		}
		if logg != nil {
			logg.Info(ctx, "enrollment step compensated: "+comp.step)
		}
	}
	return errs
}
