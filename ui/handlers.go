package ui

import (
	"net/http"

	"trialsize/domain/samplesize"
	"trialsize/internal/references"
	"trialsize/models"
)

// handleIndex renders the form and computes immediately
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw := rawFromQuery(r.URL.Query())
	results := a.compute(r, raw)

	data := pageData{
		Title:      "Clinical Trial Sample Size Calculator",
		Groups:     buildGroups(raw, results.Errors),
		Results:    results,
		Source:     a.calculator.CriticalValueSource(),
		References: references.HTML(),
	}
	a.renderTemplate(w, "index.html", data)
}

// handleFragmentResults returns only the results panel for HTMX. Plain
// browser requests are sent to the full page with the same inputs.
func (a *App) handleFragmentResults(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		target := "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	html, err := a.render.RenderResults(a.compute(r, rawFromQuery(r.URL.Query())))
	if err != nil {
		a.logger.Error("[UI] results fragment: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// compute runs the calculator and folds any failure into the view
func (a *App) compute(r *http.Request, raw samplesize.RawParameters) resultsView {
	calc, err := a.calculator.Calculate(r.Context(), raw)
	if err != nil {
		if verr, ok := samplesize.AsValidationError(err); ok {
			return resultsView{Errors: verr.Fields, Failure: "Please correct the highlighted fields."}
		}
		a.logger.Warn("[UI] calculation failed: %v", err)
		return resultsView{Failure: err.Error()}
	}
	return resultsView{
		Calculation: calc,
		Rows:        models.NewCalculationResponse(calc).Results,
	}
}

// renderTemplate executes a template into a buffer before writing
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data pageData) {
	html, err := a.render.Render(templateName, data)
	if err != nil {
		a.logger.Error("[UI] template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
