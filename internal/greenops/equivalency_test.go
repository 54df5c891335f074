package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKg(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{150000, "g", 150},
		{150, "kg", 150},
		{150, "kgCO2e", 150},
		{150, "KG CO2", 150},
		{0.15, "t", 150},
		{0.15, "tCO2", 150},
		{2, "lb", 0.907184},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := ToKg(tt.value, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := ToKg(1, "furlong")
	require.ErrorIs(t, err, ErrInvalidUnit)

	_, err = ToKg(-1, "kg")
	require.ErrorIs(t, err, ErrNegativeValue)

	_, err = ToKg(math.Inf(1), "kg")
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestEquivalencies(t *testing.T) {
	s, err := Equivalencies(150)
	require.NoError(t, err)
	require.False(t, s.Empty)
	require.Len(t, s.Items, len(Kinds()))

	tests := []struct {
		kind      Kind
		want      float64
		formatted string
	}{
		{MilesDriven, 781.25, "781"},
		{SmartphonesCharged, 18248.175, "18,248"},
		{TreeSeedlings, 2.5, "3"},
		{HomeDays, 8.1967, "8"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e, ok := s.Get(tt.kind)
			require.True(t, ok)
			assert.InEpsilon(t, tt.want, e.Value, 1e-3)
			assert.Equal(t, tt.formatted, e.Formatted)
			assert.Equal(t, tt.kind.Label(), e.Label)
		})
	}

	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", s.DisplayText)
}

func TestEquivalencies_LargeValuesAbbreviated(t *testing.T) {
	s, err := Equivalencies(1259000)
	require.NoError(t, err)

	miles, ok := s.Get(MilesDriven)
	require.True(t, ok)
	assert.Equal(t, "~6.6 million", miles.Formatted)

	phones, ok := s.Get(SmartphonesCharged)
	require.True(t, ok)
	assert.Equal(t, "~153.2 million", phones.Formatted)

	trees, ok := s.Get(TreeSeedlings)
	require.True(t, ok)
	assert.Equal(t, "20,983", trees.Formatted)
}

func TestEquivalencies_Edges(t *testing.T) {
	s, err := Equivalencies(0.5)
	require.NoError(t, err)
	assert.True(t, s.Empty)
	assert.Empty(t, s.Items)
	assert.Empty(t, Describe(0.5))

	_, err = Equivalencies(-3)
	require.ErrorIs(t, err, ErrNegativeValue)

	_, err = Equivalencies(math.NaN())
	require.ErrorIs(t, err, ErrNotFinite)
	assert.Empty(t, Describe(math.Inf(1)))

	assert.Contains(t, Describe(1), "driving ~5 miles")
}

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.NotEmpty(t, k.Label())
		assert.Positive(t, k.Factor())
	}
	unknown := Kind(9)
	assert.Equal(t, "Kind(9)", unknown.String())
	assert.Empty(t, unknown.Label())
	assert.Zero(t, unknown.Factor())
}
