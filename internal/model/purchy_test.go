package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestPurchy_DateValue(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   time.Time
		isZero bool
	}{
		{
			name: "valid ISO date",
			date: "2024-03-01",
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "missing date sorts as earliest",
			date:   "",
			isZero: true,
		},
		{
			name:   "unparsable date sorts as earliest",
			date:   "yesterday",
			isZero: true,
		},
		{
			name:   "timestamp is not a calendar date",
			date:   "2024-03-01T10:00:00Z",
			isZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Purchy{PurchyDate: tt.date}
			got := p.DateValue()
			if tt.isZero {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPurchy_DerivedAmount(t *testing.T) {
	tests := []struct {
		name   string
		purchy Purchy
		want   float64
		known  bool
	}{
		{
			name:   "server amount is authoritative",
			purchy: Purchy{Weight: floatPtr(10), Rate: floatPtr(5), Amount: floatPtr(47.5)},
			want:   47.5,
			known:  true,
		},
		{
			name:   "derived from weight and rate",
			purchy: Purchy{Weight: floatPtr(10), Rate: floatPtr(5)},
			want:   50,
			known:  true,
		},
		{
			name:   "missing rate means unknown",
			purchy: Purchy{Weight: floatPtr(10)},
			known:  false,
		},
		{
			name:   "missing weight means unknown",
			purchy: Purchy{Rate: floatPtr(5)},
			known:  false,
		},
		{
			name:   "empty record",
			purchy: Purchy{},
			known:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.purchy.DerivedAmount()
			assert.Equal(t, tt.known, ok)
			if tt.known {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestPurchy_DerivedAmount_Idempotent(t *testing.T) {
	p := Purchy{Weight: floatPtr(12.5), Rate: floatPtr(4)}

	first, ok := p.DerivedAmount()
	assert.True(t, ok)
	second, ok := p.DerivedAmount()
	assert.True(t, ok)
	assert.Equal(t, first, second)

	// Derivation never writes back into the record.
	assert.Nil(t, p.Amount)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", FormatNumber(5))
	assert.Equal(t, "12.5", FormatNumber(12.5))
	assert.Equal(t, "0.1", FormatNumber(0.1))
}

func TestAccount_Validate(t *testing.T) {
	a := Account{AccountName: "Kandy Farm"}
	assert.NoError(t, a.Validate())

	empty := Account{}
	assert.Error(t, empty.Validate())
}
