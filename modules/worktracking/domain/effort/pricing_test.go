package effort

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrice_LooksUpHoursPerItem(t *testing.T) {
	tbl := Table{"Feature": {"Simple": 2, "Medium": 5}}

	priced := Price([]ComponentSpec{
		{Type: "Feature", Complexity: "Medium", Count: 3},
	}, tbl)

	require.Len(t, priced, 1)
	require.Equal(t, float64(5), priced[0].HoursPerItem)
	require.Equal(t, float64(15), priced[0].TotalHours)
}

func TestPrice_MissingMappingPricesAtZero(t *testing.T) {
	tbl := Table{"Feature": {"Simple": 2}}

	priced := Price([]ComponentSpec{
		{Type: "Feature", Complexity: "Complex", Count: 2},
		{Type: "Migration", Complexity: "Simple", Count: 4},
	}, tbl)

	require.Equal(t, float64(0), priced[0].TotalHours)
	require.Equal(t, float64(0), priced[1].TotalHours)
}

func TestPrice_CountDefaultsToOne(t *testing.T) {
	tbl := Table{"Feature": {"Simple": 2}}

	priced := Price([]ComponentSpec{{Type: "Feature", Complexity: "Simple"}}, tbl)

	require.Equal(t, 1, priced[0].Count)
	require.Equal(t, float64(2), priced[0].TotalHours)
}

func TestPrice_CarriesFileFlagsThrough(t *testing.T) {
	priced := Price([]ComponentSpec{
		{Type: "Report", Complexity: "Simple", FileRequired: true, FileType: "xlsx"},
	}, Table{})

	require.True(t, priced[0].FileRequired)
	require.Equal(t, "xlsx", priced[0].FileType)
}

func TestPrice_IsDeterministic(t *testing.T) {
	tbl := Table{"Feature": {"Medium": 5}}
	specs := []ComponentSpec{{Type: "Feature", Complexity: "Medium", Count: 3}}

	first := Price(specs, tbl)
	second := Price(specs, tbl)
	require.Equal(t, first, second)
}

func TestWorkloadHours_SumsAcrossComponents(t *testing.T) {
	tbl := Table{"Feature": {"Simple": 2, "Medium": 5}}

	priced := Price([]ComponentSpec{
		{Type: "Feature", Complexity: "Simple", Count: 2},
		{Type: "Feature", Complexity: "Medium", Count: 1},
	}, tbl)

	require.Equal(t, float64(9), WorkloadHours(priced))
	require.Equal(t, float64(0), WorkloadHours(nil))
}
