package domain

import "time"

type QuoteKind string

const (
	QuoteKindFare               QuoteKind = "FARE"
	QuoteKindPackage            QuoteKind = "PACKAGE"
	QuoteKindPackagePassthrough QuoteKind = "PACKAGE_PASSTHROUGH"
)

// PricingFactors is the breakdown of every multiplier applied to a package
// price. A nil *PricingFactors on a record means no factors were applied.
type PricingFactors struct {
	Demand      float64 `json:"demand_multiplier"`
	Destination float64 `json:"destination_multiplier"`
	Duration    float64 `json:"duration_multiplier"`
	Tag         float64 `json:"tag_multiplier"`
}

type ConversionMetrics struct {
	Bookings       int     `json:"bookings"`
	Visitors       int     `json:"visitors"`
	ConversionRate float64 `json:"conversion_rate"`
}

// QuoteRecord is one append-only audit entry. Records are never updated or
// deleted once written.
type QuoteRecord struct {
	ID            string
	Kind          QuoteKind
	PackageID     string
	Destination   string
	TicketType    string
	FlightDate    string
	FlightTime    string
	Duration      string
	Tags          []string
	OriginalPrice float64
	FinalPrice    float64
	Factors       *PricingFactors
	Conversion    ConversionMetrics
	CreatedAt     time.Time
}
