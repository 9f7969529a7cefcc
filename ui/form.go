package ui

import (
	"html/template"
	"net/url"

	"trialsize/domain/samplesize"
	"trialsize/models"
)

// formField is one input as the template renders it
type formField struct {
	samplesize.Field
	Value   string
	Checked bool
	IsBool  bool
	Error   string
}

// formGroup is one titled section of the form
type formGroup struct {
	Name   samplesize.FieldGroup
	Fields []formField
}

// resultsView feeds the results fragment
type resultsView struct {
	Calculation *models.Calculation
	Rows        []models.MethodRow
	Errors      []samplesize.FieldError
	Failure     string
}

// pageData feeds the full page
type pageData struct {
	Title      string
	Groups     []formGroup
	Results    resultsView
	Source     string
	References template.HTML
}

// rawFromQuery reads the nine fields from a query string. With no field
// present the defaults apply; otherwise a field left empty stays empty so it
// is reported. The interim checkbox posts a hidden "false" before its own
// value, so the last value wins.
func rawFromQuery(q url.Values) samplesize.RawParameters {
	raw := samplesize.DefaultRawParameters()
	for _, f := range samplesize.Fields {
		values, ok := q[f.Key]
		if !ok || len(values) == 0 {
			continue
		}
		raw[f.Key] = values[len(values)-1]
	}
	return raw
}

// buildGroups lays out the form with the current values and field errors
func buildGroups(raw samplesize.RawParameters, errs []samplesize.FieldError) []formGroup {
	reasons := make(map[string]string, len(errs))
	for _, e := range errs {
		reasons[e.Field] = e.Reason
	}

	groups := make([]formGroup, 0, len(samplesize.FieldGroups))
	for _, g := range samplesize.FieldGroups {
		group := formGroup{Name: g}
		for _, f := range samplesize.FieldsInGroup(g) {
			group.Fields = append(group.Fields, formField{
				Field:   f,
				Value:   raw[f.Key],
				Checked: raw[f.Key] == "true",
				IsBool:  f.Kind == samplesize.KindBoolean,
				Error:   reasons[f.Key],
			})
		}
		groups = append(groups, group)
	}
	return groups
}
