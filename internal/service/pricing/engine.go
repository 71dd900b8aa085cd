package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/priceops/internal/domain"
)

// ErrInvalidFlightDate is returned when a fare request carries a flight date
// that is not in YYYY-MM-DD form. It is the only rejected input on the fare
// path; everything else degrades to a safe default.
var ErrInvalidFlightDate = errors.New("invalid date format")

type FareInput struct {
	Destination string
	TicketType  string
	FlightDate  string
	FlightTime  string
}

type PackageInput struct {
	PackageID      string
	BasePrice      float64
	Destination    string
	Duration       string
	Tags           []string
	Bookings       int
	Visitors       int
	DynamicPricing bool
}

func (in FareInput) normalized() FareInput {
	in.Destination = strings.ToLower(in.Destination)
	in.TicketType = strings.ToLower(in.TicketType)
	in.FlightTime = strings.ToLower(in.FlightTime)
	return in
}

func (in PackageInput) normalized() PackageInput {
	in.Destination = strings.ToLower(in.Destination)
	return in
}

// priceFare applies the simple-fare factor chain to the configured base
// price. Factors are independent and stack: ticket class, peak month, time of
// day, destination popularity.
func (r Rules) priceFare(in FareInput) (float64, error) {
	flightDate, err := time.Parse("2006-01-02", in.FlightDate)
	if err != nil {
		return 0, ErrInvalidFlightDate
	}

	price := r.fareBasePrice

	if in.TicketType == "business" {
		price *= businessClassMultiplier
	}
	if _, ok := r.peakMonths[flightDate.Month()]; ok {
		price *= peakMonthMultiplier
	}
	switch in.FlightTime {
	case "evening":
		price *= eveningMultiplier
	case "afternoon":
		price *= afternoonMultiplier
	}
	if _, ok := r.popularDests[in.Destination]; ok {
		price *= popularDestMultiplier
	}

	return roundPrice(price), nil
}

// pricePackage applies the four dynamic multipliers to the caller-supplied
// base price and reports the full breakdown alongside the derived conversion
// rate. The short-circuit for disabled dynamic pricing is handled by the
// caller.
func (r Rules) pricePackage(in PackageInput) (float64, domain.PricingFactors, float64) {
	rate := conversionRate(in.Bookings, in.Visitors)

	factors := domain.PricingFactors{
		Demand:      r.demandMultiplier(rate, in.Visitors),
		Destination: r.destinationMultiplier(in.Destination),
		Duration:    r.durationMultiplier(parseDurationDays(in.Duration)),
		Tag:         r.tagMultiplier(in.Tags),
	}

	final := in.BasePrice * factors.Demand * factors.Destination * factors.Duration * factors.Tag
	return roundPrice(final), factors, rate
}

func conversionRate(bookings, visitors int) float64 {
	if visitors <= 0 {
		return 0
	}
	return float64(bookings) / float64(visitors)
}

// demandMultiplier evaluates the conversion-rate ladder in priority order;
// the first matching rung wins. The low-demand discount only applies with
// enough traffic to trust the signal.
func (r Rules) demandMultiplier(rate float64, visitors int) float64 {
	switch {
	case rate > 0.08:
		return demandHotMultiplier
	case rate > 0.05:
		return demandHighMultiplier
	case rate > 0.03:
		return demandWarmMultiplier
	case rate < 0.01 && visitors > 100:
		return demandLowMultiplier
	default:
		return 1.0
	}
}

func (r Rules) destinationMultiplier(destination string) float64 {
	if _, ok := r.tier1Dests[destination]; ok {
		return tier1Multiplier
	}
	if _, ok := r.tier2Dests[destination]; ok {
		return tier2Multiplier
	}
	return 1.0
}

func (r Rules) durationMultiplier(days int) float64 {
	switch {
	case days >= 7:
		return longTripMultiplier
	case days <= 1:
		return shortTripMultiplier
	default:
		return 1.0
	}
}

// tagMultiplier is a strict priority chain, not a best-match lookup: an
// adventure tag wins over every other tag even when several are present.
func (r Rules) tagMultiplier(tags []string) float64 {
	switch {
	case hasTag(tags, "adventure"):
		return tagAdventureMultiplier
	case hasTag(tags, "relaxation"):
		return tagRelaxationMultiplier
	case hasTag(tags, "hill station"):
		return tagHillStationMultiplier
	case hasTag(tags, "beach"):
		return tagBeachMultiplier
	default:
		return 1.0
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

// parseDurationDays reads the leading integer of a "<N> days" string.
// Unparsable durations default to 0, which lands in the short-trip bucket.
func parseDurationDays(duration string) int {
	fields := strings.Fields(duration)
	if len(fields) == 0 {
		return 0
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return days
}

// roundPrice rounds half away from zero to 2 decimal places.
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
