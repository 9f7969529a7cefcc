package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trialsize/app"
	"trialsize/internal"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)
	a, err := NewApp(Config{Port: "0"}, app.NewCalculatorService(nil, logger), logger)
	require.NoError(t, err)
	return a
}

func get(t *testing.T, a *App, target string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex_DefaultsComputeImmediately(t *testing.T) {
	rec := get(t, newTestApp(t), "/", false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<td>Doi et al.</td>`)
	assert.Contains(t, body, `<td>197</td>`)
	assert.Contains(t, body, `<td>171</td>`)
	assert.Contains(t, body, `<td>17</td>`)
	assert.Contains(t, body, `value="2.2"`)
	assert.Contains(t, body, "Common Parameters")
	assert.Contains(t, body, "Critical values: fixed")
	// bibliography rendered from markdown
	assert.Contains(t, body, "<li>")
	assert.Contains(t, body, "Doi")
}

func TestIndex_ReportsFieldErrors(t *testing.T) {
	q := url.Values{}
	q.Set("standardDeviation", "abc")
	q.Set("alpha", "")

	rec := get(t, newTestApp(t), "/?"+q.Encode(), false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-field="standardDeviation"`)
	assert.Contains(t, body, `data-field="alpha"`)
	assert.Contains(t, body, "not a number")
	assert.NotContains(t, body, `<table class="results">`)
	// the typed value is echoed back
	assert.Contains(t, body, `value="abc"`)
}

func TestFragmentResults_CheckboxLastValueWins(t *testing.T) {
	a := newTestApp(t)

	unchecked := get(t, a, "/fragments/results?interimAnalysisEnabled=false", true)
	require.Equal(t, http.StatusOK, unchecked.Code)
	assert.Contains(t, unchecked.Body.String(), `<td>148</td>`)
	assert.NotContains(t, unchecked.Body.String(), "<html")

	checked := get(t, a, "/fragments/results?interimAnalysisEnabled=false&interimAnalysisEnabled=true", true)
	require.Equal(t, http.StatusOK, checked.Code)
	assert.Contains(t, checked.Body.String(), `<td>171</td>`)
}

func TestFragmentResults_NonHTMXRedirects(t *testing.T) {
	rec := get(t, newTestApp(t), "/fragments/results?designEffect=1", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?designEffect=1", rec.Header().Get("Location"))
}

func TestFragmentResults_ZeroDenominator(t *testing.T) {
	rec := get(t, newTestApp(t), "/fragments/results?mmseChange=0", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.True(t, strings.Contains(body, "mmseChange"))
}

func TestHealthAndStatic(t *testing.T) {
	a := newTestApp(t)

	health := get(t, a, "/healthz", false)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	css := get(t, a, "/static/style.css", false)
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "table.results")
}

func TestNewApp_RequiresCalculator(t *testing.T) {
	_, err := NewApp(Config{}, nil, nil)
	assert.Error(t, err)
}
