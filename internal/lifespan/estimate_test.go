package lifespan

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steelBuilding() Input {
	return Input{
		YearBuilt:      2000,
		MaterialRatios: map[string]float64{"Steel": 100},
		Usage:          UsageResidential,
		Floors:         3,
		MaterialLives:  map[string]int{"Steel": 40},
		Environment:    EnvironmentNormal,
		CurrentYear:    2025,
	}
}

func TestEstimate_ReferenceExample(t *testing.T) {
	res := Estimate(steelBuilding())

	assert.Equal(t, Result{Base: 40, AfterEnvironment: 40, AfterInspection: 40, FinalLife: 15}, res)
}

func TestEstimate_ZeroResult(t *testing.T) {
	in := steelBuilding()
	in.MaterialRatios = map[string]float64{}
	assert.Equal(t, Result{}, Estimate(in))

	in.MaterialRatios = nil
	assert.Equal(t, Result{}, Estimate(in))
}

func TestEstimate_BaseLife(t *testing.T) {
	tests := []struct {
		name   string
		ratios map[string]float64
		lives  map[string]int
		want   int
	}{
		{
			name:   "weighted sum",
			ratios: map[string]float64{"Reinforced Concrete": 60, "Steel": 40},
			lives:  map[string]int{"Reinforced Concrete": 50, "Steel": 40},
			want:   46, // 30 + 16
		},
		{
			name:   "floored",
			ratios: map[string]float64{"Wood": 33},
			lives:  map[string]int{"Wood": 50},
			want:   16, // 16.5
		},
		{
			name:   "material without life is skipped and not renormalised",
			ratios: map[string]float64{"Steel": 50, "Glass": 50},
			lives:  map[string]int{"Steel": 40},
			want:   20,
		},
		{
			name:   "ratios need not sum to 100",
			ratios: map[string]float64{"Steel": 80, "Wood": 80},
			lives:  map[string]int{"Steel": 40, "Wood": 30},
			want:   56, // 32 + 24
		},
		{
			name:   "no known lives",
			ratios: map[string]float64{"Glass": 100},
			lives:  map[string]int{"Steel": 40},
			want:   0,
		},
		{
			name:   "only zero ratios",
			ratios: map[string]float64{"Steel": 0},
			lives:  map[string]int{"Steel": 40},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := steelBuilding()
			in.MaterialRatios = tt.ratios
			in.MaterialLives = tt.lives
			in.YearBuilt = in.CurrentYear

			res := Estimate(in)
			assert.Equal(t, tt.want, res.Base)
			assert.Equal(t, tt.want, res.FinalLife)
		})
	}
}

func TestEstimate_UsageAndFloors(t *testing.T) {
	tests := []struct {
		name   string
		usage  Usage
		floors int
		want   int
	}{
		{"residential low-rise", UsageResidential, 3, 40},
		{"public low-rise", UsagePublic, 3, 50},
		{"commercial at threshold", UsageCommercial, 10, 45},
		{"commercial just below threshold", UsageCommercial, 9, 40},
		{"public high-rise", UsagePublic, 25, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := steelBuilding()
			in.Usage = tt.usage
			in.Floors = tt.floors

			res := Estimate(in)
			assert.Equal(t, 40, res.Base)
			assert.Equal(t, tt.want, res.AfterEnvironment)
		})
	}
}

func TestEstimate_EnvironmentPenalty(t *testing.T) {
	tests := []struct {
		env  Environment
		want int
	}{
		{EnvironmentNormal, 40},
		{EnvironmentCoastal, 35},
		{EnvironmentSeismic, 37},
		{EnvironmentHotHumid, 38},
		{EnvironmentHighAltitudeDry, 39},
		{Environment(99), 40},
	}

	for _, tt := range tests {
		t.Run(tt.env.String(), func(t *testing.T) {
			in := steelBuilding()
			in.Environment = tt.env

			res := Estimate(in)
			assert.Equal(t, tt.want, res.AfterEnvironment)
			assert.Equal(t, tt.want, res.AfterInspection)
		})
	}
}

func TestEstimate_Inspection(t *testing.T) {
	tests := []struct {
		name string
		insp Inspection
		want int
	}{
		{"none", Inspection{}, 40},
		{"repaired", Inspection{RecentlyRepaired: true}, 50},
		{"cracks", Inspection{HasCracks: true}, 35},
		{"leakage", Inspection{HasLeakage: true}, 37},
		{"corrosion", Inspection{HasCorrosion: true}, 37},
		{"all defects", Inspection{HasCracks: true, HasLeakage: true, HasCorrosion: true}, 29},
		{"everything", Inspection{RecentlyRepaired: true, HasCracks: true, HasLeakage: true, HasCorrosion: true}, 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := steelBuilding()
			in.Inspection = tt.insp

			res := Estimate(in)
			assert.Equal(t, 40, res.AfterEnvironment)
			assert.Equal(t, tt.want, res.AfterInspection)
			assert.Equal(t, max(tt.want-25, 0), res.FinalLife)
		})
	}
}

func TestEstimate_FinalLifeNeverNegative(t *testing.T) {
	in := steelBuilding()
	in.YearBuilt = 1850
	in.Environment = EnvironmentCoastal
	in.Inspection = Inspection{HasCracks: true, HasLeakage: true, HasCorrosion: true}
	in.MaterialLives = map[string]int{"Steel": -500}

	res := Estimate(in)
	assert.Equal(t, 0, res.FinalLife)
	assert.Less(t, res.AfterInspection, 0)

	rng := rand.New(rand.NewSource(7))
	for range 500 {
		in := Input{
			YearBuilt:      1800 + rng.Intn(300),
			MaterialRatios: map[string]float64{"Steel": rng.Float64() * 100, "Wood": rng.Float64() * 100},
			Usage:          Usage(rng.Intn(4)),
			Floors:         rng.Intn(60),
			MaterialLives:  map[string]int{"Steel": rng.Intn(200) - 100, "Wood": rng.Intn(100)},
			Environment:    Environment(rng.Intn(5)),
			Inspection: Inspection{
				RecentlyRepaired: rng.Intn(2) == 0,
				HasCracks:        rng.Intn(2) == 0,
				HasLeakage:       rng.Intn(2) == 0,
				HasCorrosion:     rng.Intn(2) == 0,
			},
			CurrentYear: 2025,
		}
		require.GreaterOrEqual(t, Estimate(in).FinalLife, 0)
	}
}

func TestEstimate_PermutationInvariant(t *testing.T) {
	type entry struct {
		name  string
		ratio float64
		life  int
	}
	entries := []entry{
		{"Reinforced Concrete", 33.3, 61},
		{"Steel", 21.7, 47},
		{"Masonry", 12.9, 83},
		{"Wood", 32.1, 29},
	}

	build := func(order []entry) Input {
		in := steelBuilding()
		in.MaterialRatios = make(map[string]float64)
		in.MaterialLives = make(map[string]int)
		for _, e := range order {
			in.MaterialRatios[e.name] = e.ratio
			in.MaterialLives[e.name] = e.life
		}
		return in
	}

	want := Estimate(build(entries))
	rng := rand.New(rand.NewSource(42))
	for range 20 {
		shuffled := append([]entry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Estimate(build(shuffled)))
	}
}

func TestResult_Stages(t *testing.T) {
	res := Result{Base: 40, AfterEnvironment: 35, AfterInspection: 45, FinalLife: 20}

	stages := res.Stages()
	require.Len(t, stages, 4)
	assert.Equal(t, Stage{Label: "Base", Years: 40}, stages[0])
	assert.Equal(t, Stage{Label: "After Env", Years: 35}, stages[1])
	assert.Equal(t, Stage{Label: "After Inspection", Years: 45}, stages[2])
	assert.Equal(t, Stage{Label: "Final", Years: 20}, stages[3])
}

func TestEstimate_Quiet(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	_ = Estimate(steelBuilding())
	_ = EstimateStrings(StringInput{YearBuilt: "soon", MaterialRatios: map[string]float64{"Steel": 100}})
	assert.Empty(t, buf.String())
}
