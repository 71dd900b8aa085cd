package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/priceops/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuoteRepository is the append-only audit log. Records are immutable once
// written; there is no update or delete.
type QuoteRepository interface {
	Append(ctx context.Context, record *domain.QuoteRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.QuoteRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type PGQuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) QuoteRepository {
	return &PGQuoteRepository{db: db}
}

func (r *PGQuoteRepository) Append(ctx context.Context, record *domain.QuoteRecord) error {
	var demand, destination, duration, tag *float64
	if f := record.Factors; f != nil {
		demand, destination, duration, tag = &f.Demand, &f.Destination, &f.Duration, &f.Tag
	}

	_, err := r.db.Exec(ctx, `INSERT INTO price_quotes
		(id, kind, package_id, destination, ticket_type, flight_date, flight_time, duration, tags,
		 original_price, final_price,
		 demand_multiplier, destination_multiplier, duration_multiplier, tag_multiplier,
		 bookings, visitors, conversion_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		record.ID, record.Kind, record.PackageID, record.Destination, record.TicketType,
		record.FlightDate, record.FlightTime, record.Duration, record.Tags,
		record.OriginalPrice, record.FinalPrice,
		demand, destination, duration, tag,
		record.Conversion.Bookings, record.Conversion.Visitors, record.Conversion.ConversionRate,
		record.CreatedAt)
	return err
}

func (r *PGQuoteRepository) ListRecent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, kind, package_id, destination, ticket_type, flight_date, flight_time, duration, tags,
		original_price, final_price,
		demand_multiplier, destination_multiplier, duration_multiplier, tag_multiplier,
		bookings, visitors, conversion_rate, created_at
		FROM price_quotes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.QuoteRecord, 0)
	for rows.Next() {
		var rec domain.QuoteRecord
		var demand, destination, duration, tag *float64
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.PackageID, &rec.Destination, &rec.TicketType,
			&rec.FlightDate, &rec.FlightTime, &rec.Duration, &rec.Tags,
			&rec.OriginalPrice, &rec.FinalPrice,
			&demand, &destination, &duration, &tag,
			&rec.Conversion.Bookings, &rec.Conversion.Visitors, &rec.Conversion.ConversionRate,
			&rec.CreatedAt); err != nil {
			return nil, err
		}
		if demand != nil && destination != nil && duration != nil && tag != nil {
			rec.Factors = &domain.PricingFactors{
				Demand:      *demand,
				Destination: *destination,
				Duration:    *duration,
				Tag:         *tag,
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PGQuoteRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM price_quotes WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

var _ QuoteRepository = (*PGQuoteRepository)(nil)
