package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"trialsize/domain/samplesize"
	"trialsize/models"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorBorder = lipgloss.Color("#16858E")
	colorError  = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#2C4A54")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// newTable returns a table whose first column is left-aligned and the rest right-aligned
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
}

func renderCalculation(calc *models.Calculation) string {
	t := newTable("Method", "Initial Sample Size", "Adjusted Sample Size", "Per Group (Adjusted)")
	for _, r := range calc.Rows() {
		t.Row(r.Method.DisplayName(), strconv.Itoa(r.Initial), strconv.Itoa(r.Adjusted), strconv.Itoa(r.PerGroupAdjusted))
	}

	footer := mutedStyle.Render(fmt.Sprintf("critical values: %s (z_alpha=%.4f, z_power=%.4f)  median adjusted: %.0f  id: %s",
		calc.CriticalSource, calc.CriticalValues.ZAlpha, calc.CriticalValues.ZPower,
		calc.Summary.MedianAdjusted, calc.ID))

	if len(calc.AchievedPower) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
	}

	powers := make([]string, 0, len(samplesize.Methods))
	for _, m := range samplesize.Methods {
		powers = append(powers, fmt.Sprintf("%s %.3f", m.DisplayName(), calc.AchievedPower[m]))
	}
	powerLine := mutedStyle.Render("achieved power at initial size: " + strings.Join(powers, ", "))
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer, powerLine)
}

func renderSweep(report *models.SweepReport) string {
	t := newTable("Scenario", "Row", "Doi et al.", "Ito et al.", "Andrews et al.", "Status")

	for _, o := range report.Outcomes {
		row := []string{string(o.Scenario.ID), strconv.Itoa(o.Scenario.Row)}
		if !o.OK() {
			row = append(row, "-", "-", "-", errorStyle.Render(o.Error))
			t.Row(row...)
			continue
		}
		for _, m := range samplesize.Methods {
			row = append(row, strconv.Itoa(o.Calculation.Results[m].Adjusted))
		}
		row = append(row, "ok")
		t.Row(row...)
	}

	m := report.Manifest
	footer := mutedStyle.Render(fmt.Sprintf("%d scenarios, %d failed (adjusted totals shown)  critical values: %s  fingerprint: %s",
		m.Scenarios, m.Failed, m.Fingerprint.CriticalSource, m.Fingerprint.Fingerprint.Short()))
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
}

func renderFields(fields []samplesize.Field) string {
	t := newTable("Flag", "Key", "Default", "Group", "Label")
	for _, f := range fields {
		t.Row("--"+f.Flag, f.Key, f.Default, string(f.Group), f.Label)
	}
	return t.String()
}

func printFieldErrors(w io.Writer, errs []samplesize.FieldError) {
	for _, e := range errs {
		flag := e.Field
		if f, ok := samplesize.LookupField(e.Field); ok {
			flag = "--" + f.Flag
		}
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("%s %q: %s", flag, e.Value, e.Reason)))
	}
}
