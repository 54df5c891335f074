package materials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tests := []struct {
		material    string
		wantEmit    float64
		wantPerArea float64
	}{
		{ReinforcedConcrete, 300, 320.0},
		{Steel, 11000, 980.0},
		{Masonry, 500, 250.0},
		{Wood, 150, 120.0},
		{"Adobe", 0, 0},
		{"", 0, 0},
	}

	table := Default()
	for _, tt := range tests {
		t.Run(tt.material, func(t *testing.T) {
			assert.Equal(t, tt.wantEmit, table.UnitEmission(tt.material))
			assert.Equal(t, tt.wantPerArea, table.UnitCarbonPerArea(tt.material))
		})
	}
}

func TestTable_Names(t *testing.T) {
	assert.Equal(t,
		[]string{Masonry, ReinforcedConcrete, Steel, Wood},
		Default().Names())
}

func TestTable_EntriesIsCopy(t *testing.T) {
	entries := Default().Entries()
	entries[Steel] = Factors{UnitEmission: 1, UnitCarbonPerArea: 1}
	delete(entries, Wood)

	assert.Equal(t, 11000.0, Default().UnitEmission(Steel))
	_, ok := Default().Lookup(Wood)
	assert.True(t, ok, "mutating Entries must not change the table")
}

func TestTable_InitialEmission(t *testing.T) {
	tests := []struct {
		name   string
		ratios map[string]float64
		want   int
	}{
		{"steel only", map[string]float64{Steel: 100}, 11000},
		{"concrete and steel", map[string]float64{ReinforcedConcrete: 60, Steel: 40}, 4580},
		{"unknown contributes nothing", map[string]float64{"Glass": 50, Wood: 50}, 75},
		{"rounds half away from zero", map[string]float64{Wood: 1}, 2},
		{"empty", map[string]float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().InitialEmission(tt.ratios))
		})
	}
}

func TestTable_EmbeddedCarbon(t *testing.T) {
	ratios := map[string]float64{ReinforcedConcrete: 60, Steel: 40}
	assert.InDelta(t, 584000.0, Default().EmbeddedCarbon(ratios, 1000), 1e-6)

	assert.Zero(t, Default().EmbeddedCarbon(map[string]float64{"Glass": 100}, 1000))
	assert.Zero(t, Default().EmbeddedCarbon(ratios, 0))
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable("1.0.0", nil)
	require.ErrorIs(t, err, ErrInvalidTable)

	_, err = NewTable("1.0.0", map[string]Factors{Steel: {UnitEmission: -1}})
	require.ErrorIs(t, err, ErrInvalidTable)

	_, err = NewTable("1.0.0", map[string]Factors{"": {UnitEmission: 1}})
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestTable_Merge(t *testing.T) {
	merged, err := Default().Merge("1.1.0", map[string]Factors{
		Steel:   {UnitEmission: 9000, UnitCarbonPerArea: 900},
		"Glass": {UnitEmission: 800, UnitCarbonPerArea: 400},
	})
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", merged.Version())
	assert.Equal(t, 9000.0, merged.UnitEmission(Steel))
	assert.Equal(t, 400.0, merged.UnitCarbonPerArea("Glass"))
	assert.Equal(t, 320.0, merged.UnitCarbonPerArea(ReinforcedConcrete))

	// the receiver is untouched
	assert.Equal(t, 11000.0, Default().UnitEmission(Steel))
	assert.Equal(t, DefaultVersion, Default().Version())
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.4.2", false},
		{"v1.2.0", false},
		{"0.9.0", true},
		{"2.0.0", true},
		{"not-a-version", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckVersion(tt.version)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedVersion)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("merges onto base", func(t *testing.T) {
		data := []byte(`
version: 1.2.0
materials:
  Cross-Laminated Timber:
    unit_emission: 110
    unit_carbon_per_area: 95
`)
		table, err := Parse(data, Default())
		require.NoError(t, err)
		assert.Equal(t, 95.0, table.UnitCarbonPerArea("Cross-Laminated Timber"))
		assert.Equal(t, 980.0, table.UnitCarbonPerArea(Steel))
	})

	t.Run("standalone table", func(t *testing.T) {
		data := []byte(`
version: 1.0.0
materials:
  Bamboo:
    unit_emission: 40
    unit_carbon_per_area: 30
`)
		table, err := Parse(data, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bamboo"}, table.Names())
	})

	t.Run("rejects unsupported version", func(t *testing.T) {
		_, err := Parse([]byte("version: 3.0.0\nmaterials: {Steel: {unit_emission: 1}}\n"), Default())
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("version: [1"), Default())
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1.0.1
materials:
  Wood:
    unit_emission: 140
    unit_carbon_per_area: 110
`), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 110.0, table.UnitCarbonPerArea(Wood))
	assert.Equal(t, "1.0.1", table.Version())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
