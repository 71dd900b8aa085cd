package pricing

import (
	"strings"
	"time"

	"github.com/Domenick1991/priceops/config"
)

// Factor constants for the layered pricing model. Tables that vary per
// deployment (peak months, destination sets) live in Rules; the multipliers
// themselves are fixed platform-wide.
const (
	businessClassMultiplier = 1.5
	peakMonthMultiplier     = 1.2
	eveningMultiplier       = 1.15
	afternoonMultiplier     = 1.10
	popularDestMultiplier   = 1.15

	demandHotMultiplier  = 1.25
	demandHighMultiplier = 1.15
	demandWarmMultiplier = 1.08
	demandLowMultiplier  = 0.92

	tier1Multiplier = 1.15
	tier2Multiplier = 1.08

	longTripMultiplier  = 0.95
	shortTripMultiplier = 1.12

	tagAdventureMultiplier   = 1.12
	tagRelaxationMultiplier  = 1.08
	tagHillStationMultiplier = 1.10
	tagBeachMultiplier       = 1.10
)

// Rules is the immutable rule-table set the engine prices against. Build it
// once at startup; concurrent use is safe because it is never mutated.
type Rules struct {
	fareBasePrice float64
	peakMonths    map[time.Month]struct{}
	popularDests  map[string]struct{}
	tier1Dests    map[string]struct{}
	tier2Dests    map[string]struct{}
}

func NewRules(cfg config.PricingConfig) Rules {
	return Rules{
		fareBasePrice: cfg.FareBasePrice,
		peakMonths:    monthSet(cfg.PeakMonths),
		popularDests:  lowerSet(cfg.PopularDestinations),
		tier1Dests:    lowerSet(cfg.Tier1Destinations),
		tier2Dests:    lowerSet(cfg.Tier2Destinations),
	}
}

func (r Rules) FareBasePrice() float64 {
	return r.fareBasePrice
}

func monthSet(months []int) map[time.Month]struct{} {
	set := make(map[time.Month]struct{}, len(months))
	for _, m := range months {
		set[time.Month(m)] = struct{}{}
	}
	return set
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
