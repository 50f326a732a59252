package wizard

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

// Disabled reports which dependent tiers have no selected parent.
type Disabled struct {
	States bool `json:"states"`
	Cities bool `json:"cities"`
}

// tierState is one tier's options and the lookup that may replace them.
type tierState struct {
	token   uint64
	parent  string
	loading bool
	failed  bool
	options []domain.LocationOption
}

// Cascade keeps the country, state and city tiers consistent. Selecting a
// parent resets every tier below it, and a lookup result is applied only
// if its tier still expects it.
type Cascade struct {
	source  domain.LocationService
	log     logr.Logger
	onError func(domain.Tier, error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	tiers map[domain.Tier]*tierState
}

// NewCascade returns a Cascade fetching from source. onError, if non-nil,
// is called without any lock held when a current lookup fails.
func NewCascade(source domain.LocationService, log logr.Logger, onError func(domain.Tier, error)) *Cascade {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cascade{
		source:  source,
		log:     log.WithName("cascade"),
		onError: onError,
		ctx:     ctx,
		cancel:  cancel,
		tiers:   make(map[domain.Tier]*tierState, len(domaintypes.Tiers)),
	}
	for _, t := range domaintypes.Tiers {
		c.tiers[t] = &tierState{}
	}
	return c
}

// Mount starts loading the country tier.
func (c *Cascade) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issue(domaintypes.TierCountry, "")
}

// SelectCountry resets the state and city tiers and, for a non-empty
// country, starts loading its states.
func (c *Cascade) SelectCountry(country string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset(domaintypes.TierState)
	c.reset(domaintypes.TierCity)
	if country != "" {
		c.issue(domaintypes.TierState, country)
	}
}

// SelectState resets the city tier and, for a non-empty state, starts
// loading its cities.
func (c *Cascade) SelectState(state string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset(domaintypes.TierCity)
	if state != "" {
		c.issue(domaintypes.TierCity, state)
	}
}

// Snapshot returns copies of the current options, loading flags and
// disabled flags.
func (c *Cascade) Snapshot() (domain.LocationTiers, domain.LoadingFlags, Disabled) {
	c.mu.Lock()
	defer c.mu.Unlock()

	country := c.tiers[domaintypes.TierCountry]
	state := c.tiers[domaintypes.TierState]
	city := c.tiers[domaintypes.TierCity]

	tiers := domain.LocationTiers{
		Countries: cloneOptions(country.options),
		States:    cloneOptions(state.options),
		Cities:    cloneOptions(city.options),
	}
	loading := domain.LoadingFlags{
		Countries: country.loading,
		States:    state.loading,
		Cities:    city.loading,
	}
	disabled := Disabled{
		States: state.parent == "",
		Cities: city.parent == "",
	}
	return tiers, loading, disabled
}

// Failed reports whether tier's most recent lookup returned an error.
func (c *Cascade) Failed(tier domain.Tier) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tiers[tier].failed
}

// Wait blocks until every issued lookup has returned.
func (c *Cascade) Wait() { c.wg.Wait() }

// Close cancels outstanding lookups and waits for them.
func (c *Cascade) Close() {
	c.cancel()
	c.wg.Wait()
}

// reset empties tier and invalidates its outstanding lookup. Callers hold mu.
func (c *Cascade) reset(tier domain.Tier) {
	ts := c.tiers[tier]
	ts.token++
	ts.parent = ""
	ts.loading = false
	ts.failed = false
	ts.options = nil
}

// issue starts a lookup for tier under parent. Callers hold mu.
func (c *Cascade) issue(tier domain.Tier, parent string) {
	ts := c.tiers[tier]
	ts.token++
	ts.parent = parent
	ts.loading = true
	ts.failed = false
	ts.options = nil

	token := ts.token
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		opts, err := c.source.FetchChildren(c.ctx, tier, parent)
		c.complete(tier, token, parent, opts, err)
	}()
}

func (c *Cascade) complete(tier domain.Tier, token uint64, parent string, opts []domain.LocationOption, err error) {
	c.mu.Lock()
	ts := c.tiers[tier]
	if ts.token != token || ts.parent != parent {
		c.mu.Unlock()
		c.log.V(1).Info("stale lookup dropped", "tier", tier, "parent", parent)
		return
	}
	ts.loading = false
	if err != nil {
		ts.options = nil
		ts.failed = true
		c.mu.Unlock()
		if c.ctx.Err() != nil {
			return
		}
		c.log.Error(err, "location lookup failed", "tier", tier, "parent", parent)
		if c.onError != nil {
			c.onError(tier, err)
		}
		return
	}
	ts.options = cloneOptions(opts)
	c.mu.Unlock()
}

func cloneOptions(in []domain.LocationOption) []domain.LocationOption {
	out := make([]domain.LocationOption, len(in))
	copy(out, in)
	return out
}
