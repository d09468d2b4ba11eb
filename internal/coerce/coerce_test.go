package coerce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Strings(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"plain", "42.5", f(42.5)},
		{"thousands separators", "1,234,567.89", f(1234567.89)},
		{"surrounding whitespace", "  -15.2  ", f(-15.2)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"garbage", "N/A", nil},
		{"nil", nil, nil},
		{"negative", "-2000", f(-2000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestNumber_Numeric(t *testing.T) {
	got := Number(float64(99.5))
	require.NotNil(t, got)
	assert.Equal(t, 99.5, *got)

	got = Number(int(7))
	require.NotNil(t, got)
	assert.Equal(t, 7.0, *got)
}

func TestNumber_NonFinite(t *testing.T) {
	assert.Nil(t, Number(math.NaN()))
	assert.Nil(t, Number(math.Inf(1)))
	assert.Nil(t, Number(math.Inf(-1)))
}

func TestInstant_DayFirstSlash(t *testing.T) {
	iso, ok := Instant("25/12/2024")
	require.True(t, ok)
	assert.Equal(t, "2024-12-25T00:00:00Z", iso)
}

func TestInstant_SpaceSeparated(t *testing.T) {
	iso, ok := Instant("2024-03-05 14:30:00")
	require.True(t, ok)
	assert.Equal(t, "2024-03-05T14:30:00Z", iso)
}

func TestInstant_Generic(t *testing.T) {
	iso, ok := Instant("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, "2024-03-05T00:00:00Z", iso)
}

func TestInstant_Unparseable(t *testing.T) {
	orig, ok := Instant("  not a date  ")
	assert.False(t, ok)
	assert.Equal(t, "not a date", orig)
}

func TestInstant_Empty(t *testing.T) {
	s, ok := Instant(nil)
	assert.False(t, ok)
	assert.Equal(t, "", s)
}

func TestParseInstant(t *testing.T) {
	ts, ok := ParseInstant("2024-12-25T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = ParseInstant("25/12/2024")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "hello", String("  hello  "))
	assert.Equal(t, "42", String(float64(42)))
	assert.Equal(t, "42.5", String(float64(42.5)))
	assert.Equal(t, "", String(struct{}{}))
}

func f(v float64) *float64 { return &v }
