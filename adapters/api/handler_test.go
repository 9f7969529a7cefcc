package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"trialsize/adapters/excel"
	"trialsize/app"
	"trialsize/internal"
	"trialsize/internal/analysis/power"
	"trialsize/internal/testkit"
)

func newTestServer(t *testing.T, criticalValues string) *Server {
	t.Helper()
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)
	source, ok := power.SourceByName(criticalValues)
	require.True(t, ok)

	s, err := NewServer(Config{GinMode: gin.TestMode}, app.NewCalculatorService(source, logger), logger)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateCalculation_Defaults(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodPost, "/api/v1/calculations", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Equal(t, "doi", gjson.Get(body, "results.0.method").String())
	assert.Equal(t, int64(113), gjson.Get(body, "results.0.initial").Int())
	assert.Equal(t, int64(197), gjson.Get(body, "results.0.adjusted").Int())
	assert.Equal(t, int64(99), gjson.Get(body, "results.0.perGroupAdjusted").Int())
	assert.Equal(t, int64(171), gjson.Get(body, "results.1.adjusted").Int())
	assert.Equal(t, int64(86), gjson.Get(body, "results.1.perGroupAdjusted").Int())
	assert.Equal(t, int64(17), gjson.Get(body, "results.2.adjusted").Int())
	assert.Equal(t, "fixed", gjson.Get(body, "criticalValueSource").String())
	assert.Equal(t, "doi", gjson.Get(body, "summary.largest").String())
	assert.True(t, gjson.Get(body, "id").Exists())
	assert.True(t, gjson.Get(body, "fingerprint").Exists())
}

func TestCreateCalculation_MixedValueTypes(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodPost, "/api/v1/calculations",
		`{"interimAnalysisEnabled": false, "dropoutRatePercent": "20", "designEffect": 1.2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(148), gjson.Get(rec.Body.String(), "results.#(method==\"ito\").adjusted").Int())
}

func TestCreateCalculation_ValidationFailure(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodPost, "/api/v1/calculations",
		`{"standardDeviation": "abc", "dropoutRatePercent": 100, "mmseChange": 0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "VALIDATION_ERROR", gjson.Get(body, "code").String())
	fields := gjson.Get(body, "fields.#.field").Array()
	var names []string
	for _, f := range fields {
		names = append(names, f.String())
	}
	assert.ElementsMatch(t, []string{"standardDeviation", "dropoutRatePercent", "mmseChange"}, names)
	assert.Equal(t, "not a number", gjson.Get(body, `fields.#(field=="standardDeviation").reason`).String())
}

func TestCreateCalculation_BadRequests(t *testing.T) {
	s := newTestServer(t, "fixed")

	unknown := do(t, s, http.MethodPost, "/api/v1/calculations", `{"clusterSize": 12}`)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, "INVALID_INPUT", gjson.Get(unknown.Body.String(), "code").String())
	assert.Contains(t, gjson.Get(unknown.Body.String(), "error").String(), "clusterSize")

	malformed := do(t, s, http.MethodPost, "/api/v1/calculations", `{"alpha": {"nested": true}}`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
}

func TestCreateCalculation_DerivedCriticalValues(t *testing.T) {
	rec := do(t, newTestServer(t, "derived"), http.MethodPost, "/api/v1/calculations", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "derived", gjson.Get(body, "criticalValueSource").String())
	assert.InDelta(t, 1.959964, gjson.Get(body, "criticalValues.zAlpha").Float(), 1e-5)
}

func TestCreateScenarios(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodPost, "/api/v1/scenarios", `[
		{"id": "baseline", "parameters": {}},
		{"parameters": {"dropoutRatePercent": 0}},
		{"id": "broken", "parameters": {"alpha": 0}}
	]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Equal(t, int64(3), gjson.Get(body, "outcomes.#").Int())
	assert.Equal(t, "baseline", gjson.Get(body, "outcomes.0.scenario.id").String())
	assert.Equal(t, int64(197), gjson.Get(body, "outcomes.0.results.0.adjusted").Int())
	assert.Equal(t, "scenario-2", gjson.Get(body, "outcomes.1.scenario.id").String())
	assert.Equal(t, int64(156), gjson.Get(body, "outcomes.1.results.0.adjusted").Int())
	assert.False(t, gjson.Get(body, "outcomes.2.results").Exists())
	assert.Equal(t, "alpha", gjson.Get(body, "outcomes.2.errors.0.field").String())
	assert.Equal(t, "request", gjson.Get(body, "manifest.source").String())
	assert.Equal(t, int64(3), gjson.Get(body, "manifest.scenarios").Int())
	assert.Len(t, gjson.Get(body, "manifest.fingerprint.fingerprint").String(), 64)
}

func TestCreateScenarios_Empty(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodPost, "/api/v1/scenarios", `[]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaticEndpoints(t *testing.T) {
	s := newTestServer(t, "fixed")

	fields := do(t, s, http.MethodGet, "/api/v1/fields", "")
	require.Equal(t, http.StatusOK, fields.Code)
	assert.Equal(t, int64(9), gjson.Get(fields.Body.String(), "fields.#").Int())
	assert.Equal(t, "standardDeviation", gjson.Get(fields.Body.String(), "fields.0.key").String())

	defaults := do(t, s, http.MethodGet, "/api/v1/defaults", "")
	require.Equal(t, http.StatusOK, defaults.Code)
	assert.Equal(t, "0.82", gjson.Get(defaults.Body.String(), "mmseChange").String())
	assert.Equal(t, "true", gjson.Get(defaults.Body.String(), "interimAnalysisEnabled").String())

	refs := do(t, s, http.MethodGet, "/api/v1/references", "")
	require.Equal(t, http.StatusOK, refs.Code)
	assert.Equal(t, int64(7), gjson.Get(refs.Body.String(), "caveats.#").Int())
	assert.Equal(t, int64(3), gjson.Get(refs.Body.String(), "bibliography.#").Int())

	health := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", gjson.Get(health.Body.String(), "status").String())
}

func TestListWorkbookScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.csv")
	require.NoError(t, testkit.WriteCSV(path, testkit.SensitivitySheet()))

	s := newTestServer(t, "fixed").WithScenarioSource(path, excel.NewScenarioReader(excel.ExcelConfig{FilePath: path}))
	rec := do(t, s, http.MethodGet, "/api/v1/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Equal(t, int64(4), gjson.Get(body, "outcomes.#").Int())
	assert.Equal(t, int64(197), gjson.Get(body, "outcomes.0.results.0.adjusted").Int())
	assert.Equal(t, "dropoutRatePercent", gjson.Get(body, "outcomes.3.errors.0.field").String())
	assert.Equal(t, path, gjson.Get(body, "manifest.source").String())
	assert.Equal(t, int64(1), gjson.Get(body, "manifest.failed").Int())
}

func TestListWorkbookScenarios_NotConfigured(t *testing.T) {
	rec := do(t, newTestServer(t, "fixed"), http.MethodGet, "/api/v1/scenarios", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
