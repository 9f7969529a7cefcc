package references

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trialsize/domain/samplesize"
)

func TestLoad_SplitsSections(t *testing.T) {
	content := Load()

	require.Len(t, content.Caveats, 7)
	assert.Equal(t, "O'Brien-Fleming boundaries are used for the interim analysis adjustment.", content.Caveats[2])

	require.Len(t, content.Bibliography, 3)
	assert.Equal(t, samplesize.MethodDoi, content.Bibliography[0].Method)
	assert.Equal(t, samplesize.MethodIto, content.Bibliography[1].Method)
	assert.Equal(t, samplesize.MethodAndrews, content.Bibliography[2].Method)
	assert.True(t, strings.HasPrefix(content.Bibliography[2].Citation, "Andrews, J. S., et al. (2019)."))
}

func TestHTML_RendersLists(t *testing.T) {
	out := string(HTML())

	assert.Contains(t, out, "<h3")
	assert.Contains(t, out, "Important Considerations")
	assert.Equal(t, 10, strings.Count(out, "<li>"))
	assert.Contains(t, out, "Healthcare, 10(8), 1462.")
}

func TestMarkdown_IsVerbatim(t *testing.T) {
	assert.True(t, strings.HasPrefix(Markdown(), caveatsHeading))
}
