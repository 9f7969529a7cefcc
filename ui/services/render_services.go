package services

import (
	"fmt"
	"html/template"
	"strings"
)

// RenderService executes templates into strings so a failure never leaves a
// half-written response
type RenderService struct {
	templates *template.Template
}

func NewRenderService(templates *template.Template) *RenderService {
	return &RenderService{
		templates: templates,
	}
}

// Render executes a named template
func (s *RenderService) Render(name string, data interface{}) (string, error) {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderResults renders the results fragment
func (s *RenderService) RenderResults(data interface{}) (string, error) {
	return s.Render("results", data)
}
