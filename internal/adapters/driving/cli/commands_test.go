package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/refdata"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/services"
)

var chartArgs = []string{
	"--time", "2024-03-20T12:00:00Z",
	"--lat", "12.97",
	"--lon", "77.59",
	"--save=false",
	"--vargas=false",
}

func newReferenceService(t *testing.T) *services.ReferenceService {
	t.Helper()
	store, err := refdata.NewStore(refdata.Options{Validate: services.ValidateReference})
	require.NoError(t, err)
	return services.NewReferenceService(store)
}

func TestChartCmd_Text(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart()}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, append([]string{"chart", "-o", "text"}, chartArgs...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Chart chart-1")
	assert.Contains(t, out, "Unavailable: sa")
	assert.Contains(t, out, "Jyotish day unavailable: ephemeris unavailable")
	assert.Contains(t, out, "vimshottari: ma > ra")
	assert.InDelta(t, 12.97, mock.lastRequest.Geo.Latitude, 1e-9)
	assert.Zero(t, mock.saved)
}

func TestChartCmd_JSON(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart()}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, append([]string{"chart", "-o", "json"}, chartArgs...)...)
	require.NoError(t, err)

	var got domain.Chart
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "chart-1", got.ID)
	assert.Equal(t, fixtureJD, got.JD)
	require.Len(t, got.Bodies, 1)
	assert.Equal(t, domain.DignityDebilitated, got.Bodies[0].Dignity)
}

func TestChartCmd_Save(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart()}
	useServices(t, &Services{Chart: mock})

	args := []string{"chart", "-o", "json", "--time", "2024-03-20T12:00:00Z", "--lat", "0", "--lon", "0", "--vargas=false", "--save"}
	_, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.saved)
}

func TestChartCmd_ComputeError(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart(), err: domain.ErrEphemerisUnavailable}
	useServices(t, &Services{Chart: mock})

	_, err := execute(t, append([]string{"chart", "-o", "text"}, chartArgs...)...)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestRunChart_NoService(t *testing.T) {
	SetServices(nil)

	err := runChart(chartCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart service not configured")
}

func TestSiderealCmd(t *testing.T) {
	mock := &MockChartService{
		sidereal: domain.SiderealTime{
			Mean:     domain.HMS{Hours: 18, Minutes: 15},
			Apparent: domain.HMS{Hours: 18, Minutes: 15, Seconds: 1.25},
		},
	}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, "sidereal", "-o", "text", "--time", "2024-03-20T12:00:00Z", "--lat", "51.48", "--lon", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Local sidereal time")
	assert.Contains(t, out, "18:15:00.00")
	assert.Contains(t, out, "18:15:01.25")
}

func TestVargaCmd(t *testing.T) {
	mock := &MockChartService{
		vargas: []domain.VargaValue{
			{Scheme: "d9", Divisor: 9, Value: 12.5, Sign: 1},
		},
	}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, "varga", "-o", "text", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "d9")
	assert.Contains(t, out, "12°30'00\"")
}

func TestVargaCmd_BadLongitude(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}})

	_, err := execute(t, "varga", "-o", "text", "east")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashaCmd_MarksRunningPeriods(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart()}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, "dasha", "-o", "text",
		"--time", "1985-07-12T01:00:00Z",
		"--at", "2024-03-20T12:00:00Z",
		"--system", "vimshottari",
		"--depth", "2",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Dasha: vimshottari")
	assert.Contains(t, out, "* ma")
	assert.Contains(t, out, "*   ra")
	assert.Contains(t, out, "    ma")
	assert.Equal(t, "vimshottari", mock.lastRequest.DashaSystem)
	assert.Equal(t, 2, mock.lastRequest.DashaDepth)
}

func TestDashaCmd_BadAt(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{chart: fixtureChart()}})

	_, err := execute(t, "dasha", "-o", "text", "--time", "now", "--at", "whenever")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChartsListCmd(t *testing.T) {
	created := time.Date(2024, 3, 21, 8, 0, 0, 0, time.UTC)
	mock := &MockChartService{
		charts: []domain.ChartSummary{
			{ID: "chart-1", Name: "greenwich", Time: created, CreatedAt: created},
		},
	}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, "charts", "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "greenwich")
	assert.Contains(t, out, "Total: 1 charts")
}

func TestChartsListCmd_Empty(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}})

	out, err := execute(t, "charts", "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No charts stored.")
}

func TestChartsGetCmd(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{chart: fixtureChart()}})

	out, err := execute(t, "charts", "get", "chart-1", "-o", "json", "--vargas=false")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "chart-1"`)

	_, err = execute(t, "charts", "get", "missing", "-o", "json", "--vargas=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart missing not found")
}

func TestChartsDeleteCmd(t *testing.T) {
	mock := &MockChartService{chart: fixtureChart()}
	useServices(t, &Services{Chart: mock})

	out, err := execute(t, "charts", "delete", "chart-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted chart: chart-1")
	assert.Equal(t, []string{"chart-1"}, mock.deleted)

	_, err = execute(t, "charts", "delete", "chart-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart chart-2 not found")
}

func TestReferenceShowCmd(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}, Reference: newReferenceService(t)})

	out, err := execute(t, "reference", "show", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Reference data")
	assert.Contains(t, out, refdata.SourceEmbedded)
	assert.Contains(t, out, "vimshottari")
}

func TestReferenceShowCmd_SectionJSON(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}, Reference: newReferenceService(t)})

	out, err := execute(t, "reference", "show", domain.SectionNakshatras, "-o", "json")
	require.NoError(t, err)

	var nakshatras []domain.Nakshatra
	require.NoError(t, json.Unmarshal([]byte(out), &nakshatras))
	assert.Len(t, nakshatras, 27)
}

func TestReferenceShowCmd_UnknownSection(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}, Reference: newReferenceService(t)})

	_, err := execute(t, "reference", "show", "houses", "-o", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestReferenceValidateCmd(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}, Reference: newReferenceService(t)})

	out, err := execute(t, "reference", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid.")
}

func TestReferenceValidateCmd_File(t *testing.T) {
	useServices(t, &Services{Chart: &MockChartService{}, Reference: newReferenceService(t)})

	path := filepath.Join(t.TempDir(), refdata.OverrideFileName)
	require.NoError(t, os.WriteFile(path, []byte("# no overrides\n"), 0o600))

	out, err := execute(t, "reference", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid.")

	_, err = execute(t, "reference", "validate", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestRunTUI_NoService(t *testing.T) {
	SetServices(nil)

	err := runTUI(tuiCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart service not configured")
}
