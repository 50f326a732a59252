package types

import "fmt"

// Tier is one level of the country/state/city hierarchy.
type Tier string

const (
	TierCountry Tier = "country"
	TierState   Tier = "state"
	TierCity    Tier = "city"
)

// Tiers lists the hierarchy top-down.
var Tiers = []Tier{TierCountry, TierState, TierCity}

// String returns the string form of the tier.
func (t Tier) String() string { return string(t) }

// ParseTier converts s into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierCountry, TierState, TierCity:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown location tier %q", s)
}

// LocationOption is a selectable entry of a tier.
type LocationOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationTiers holds the options currently offered for each tier.
type LocationTiers struct {
	Countries []LocationOption `json:"countries"`
	States    []LocationOption `json:"states"`
	Cities    []LocationOption `json:"cities"`
}

// LoadingFlags is true per tier only while its lookup is outstanding.
type LoadingFlags struct {
	Countries bool `json:"countries"`
	States    bool `json:"states"`
	Cities    bool `json:"cities"`
}
