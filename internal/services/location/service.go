package location

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

// Latency is the artificial delay applied before answering a lookup.
type Latency struct {
	Countries time.Duration `yaml:"countries"`
	Children  time.Duration `yaml:"children"`
}

// DefaultLatency mirrors a slow remote directory.
func DefaultLatency() Latency {
	return Latency{Countries: 500 * time.Millisecond, Children: 300 * time.Millisecond}
}

// Service answers lookups from the static table.
type Service struct {
	log     logr.Logger
	latency Latency

	countries []domain.LocationOption
	states    map[string][]domain.LocationOption
	cities    map[string][]domain.LocationOption
}

// New returns a Service over the built-in table.
func New(log logr.Logger, latency Latency) *Service {
	return &Service{
		log:       log.WithName("location"),
		latency:   latency,
		countries: defaultCountries,
		states:    defaultStates,
		cities:    defaultCities,
	}
}

// FetchChildren returns the options of tier under parent, in table order.
func (s *Service) FetchChildren(
	ctx context.Context,
	tier domain.Tier,
	parent string,
) ([]domain.LocationOption, error) {
	var (
		src   []domain.LocationOption
		delay time.Duration
	)
	switch tier {
	case domaintypes.TierCountry:
		src, delay = s.countries, s.latency.Countries
	case domaintypes.TierState:
		if parent == "" {
			return []domain.LocationOption{}, nil
		}
		src, delay = s.states[parent], s.latency.Children
	case domaintypes.TierCity:
		if parent == "" {
			return []domain.LocationOption{}, nil
		}
		src, delay = s.cities[parent], s.latency.Children
	default:
		return nil, fmt.Errorf("unknown location tier %q", tier)
	}

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	s.log.V(1).Info("lookup", "tier", tier, "parent", parent, "count", len(src))
	return append([]domain.LocationOption{}, src...), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Compile-time assertion that Service implements domain.LocationService.
var _ domain.LocationService = (*Service)(nil)
