// Package references holds the fixed caveats and bibliography shown next to
// the comparison table. Nothing here is derived from a calculation.
package references

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"trialsize/domain/samplesize"
)

//go:embed references.md
var document string

const (
	caveatsHeading      = "### Important Considerations"
	bibliographyHeading = "### References"
)

// Reference is one bibliography entry
type Reference struct {
	Method   samplesize.Method `json:"method"`
	Citation string            `json:"citation"`
}

// Content is the static text block in structured form
type Content struct {
	Caveats      []string    `json:"caveats"`
	Bibliography []Reference `json:"bibliography"`
}

// Markdown returns the document verbatim
func Markdown() string {
	return document
}

// HTML renders the document for the web shell
func HTML() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(document), p, renderer))
}

// Load splits the document into caveats and bibliography entries
func Load() Content {
	var content Content
	var section string

	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == caveatsHeading:
			section = caveatsHeading
		case line == bibliographyHeading:
			section = bibliographyHeading
		case strings.HasPrefix(line, "- "):
			item := strings.TrimPrefix(line, "- ")
			if section == caveatsHeading {
				content.Caveats = append(content.Caveats, item)
			} else if section == bibliographyHeading {
				content.Bibliography = append(content.Bibliography, Reference{
					Method:   methodFor(item),
					Citation: item,
				})
			}
		}
	}

	return content
}

// methodFor links a citation to the method named after its first author
func methodFor(citation string) samplesize.Method {
	for _, m := range samplesize.Methods {
		if strings.HasPrefix(strings.ToLower(citation), string(m)+",") {
			return m
		}
	}
	return ""
}
