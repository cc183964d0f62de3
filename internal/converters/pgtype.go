package converters

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToNullableText converts a string pointer to pgtype.Text
// Returns invalid Text if pointer is nil
func ToNullableText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// NullText maps the empty string to SQL NULL
func NullText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// TextOrEmpty returns the string value, or "" for NULL
func TextOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// UUIDStringPtr converts a nullable UUID to a string pointer, nil for NULL
func UUIDStringPtr(id pgtype.UUID) *string {
	if !id.Valid {
		return nil
	}
	s := uuid.UUID(id.Bytes).String()
	return &s
}

// UUIDStringOrEmpty converts a nullable UUID to its string form, "" for NULL
func UUIDStringOrEmpty(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// ToNullableInt32 converts an int pointer to pgtype.Int4
// Returns invalid Int4 if pointer is nil
func ToNullableInt32(i *int) pgtype.Int4 {
	if i == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(*i), Valid: true}
}

// DecimalToNumeric converts a decimal to a valid pgtype.Numeric without losing precision
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// ToNullableNumeric converts a decimal pointer to pgtype.Numeric
// Returns invalid Numeric if pointer is nil
func ToNullableNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{Valid: false}
	}
	return DecimalToNumeric(*d)
}

// NumericToDecimal converts pgtype.Numeric to decimal.Decimal.
// NULL maps to zero; NaN and infinities are rejected by the schema.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil || n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// NumericToDecimalPtr converts pgtype.Numeric to a decimal pointer, nil for NULL
func NumericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := NumericToDecimal(n)
	return &d
}

// ToTimestamptz wraps a time as a valid pgtype.Timestamptz
func ToTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// ToNullableTimestamptz converts a time pointer to pgtype.Timestamptz
// Returns invalid Timestamptz if pointer is nil
func ToNullableTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// TimestamptzToTimePtr converts pgtype.Timestamptz to a time pointer, nil for NULL
func TimestamptzToTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
