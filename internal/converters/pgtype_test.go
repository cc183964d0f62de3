package converters

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNullableText(t *testing.T) {
	t.Run("nil pointer returns invalid", func(t *testing.T) {
		result := ToNullableText(nil)
		assert.False(t, result.Valid)
	})

	t.Run("empty string returns valid Text", func(t *testing.T) {
		str := ""
		result := ToNullableText(&str)
		assert.True(t, result.Valid)
		assert.Equal(t, "", result.String)
	})
}

func TestNullText(t *testing.T) {
	assert.False(t, NullText("").Valid)

	result := NullText("order-42")
	assert.True(t, result.Valid)
	assert.Equal(t, "order-42", result.String)
	assert.Equal(t, "order-42", TextOrEmpty(result))
	assert.Equal(t, "", TextOrEmpty(pgtype.Text{}))
}

func TestUUIDStringPtr(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	valid := pgtype.UUID{Bytes: id, Valid: true}
	require.NotNil(t, UUIDStringPtr(valid))
	assert.Equal(t, id.String(), *UUIDStringPtr(valid))
	assert.Equal(t, id.String(), UUIDStringOrEmpty(valid))

	assert.Nil(t, UUIDStringPtr(pgtype.UUID{}))
	assert.Equal(t, "", UUIDStringOrEmpty(pgtype.UUID{}))
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"integer", "1000"},
		{"fractional", "199.9900"},
		{"negative", "-800.25"},
		{"zero", "0"},
		{"tiny", "0.0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.value)
			n := DecimalToNumeric(d)
			assert.True(t, n.Valid)
			assert.True(t, d.Equal(NumericToDecimal(n)), "expected %s, got %s", d, NumericToDecimal(n))
		})
	}
}

func TestNumericToDecimal_Null(t *testing.T) {
	assert.True(t, NumericToDecimal(pgtype.Numeric{}).IsZero())
	assert.Nil(t, NumericToDecimalPtr(pgtype.Numeric{}))
	assert.False(t, ToNullableNumeric(nil).Valid)

	amount := decimal.NewFromInt(800)
	ptr := NumericToDecimalPtr(ToNullableNumeric(&amount))
	require.NotNil(t, ptr)
	assert.True(t, amount.Equal(*ptr))
}

func TestTimestamptz(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now, ToTimestamptz(now).Time)
	assert.False(t, ToNullableTimestamptz(nil).Valid)
	assert.Nil(t, TimestamptzToTimePtr(pgtype.Timestamptz{}))

	ptr := TimestamptzToTimePtr(ToNullableTimestamptz(&now))
	require.NotNil(t, ptr)
	assert.True(t, now.Equal(*ptr))
}

func TestToNullableInt32(t *testing.T) {
	assert.False(t, ToNullableInt32(nil).Valid)

	days := 30
	result := ToNullableInt32(&days)
	assert.True(t, result.Valid)
	assert.Equal(t, int32(30), result.Int32)
}
