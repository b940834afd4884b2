package preview_test

import (
	"testing"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/internal/tui/preview"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestText(t *testing.T) {
	ds := []render.Descriptor{
		{Kind: render.KindHeading, Role: render.RoleTitle, Level: 2, Text: "겨울 팁",
			Spans: []render.Span{{Text: "겨울", Highlight: true}, {Text: " 팁"}}},
		{Kind: render.KindParagraph, Role: render.RoleText, Text: "항목", ListItem: true},
		{Kind: render.KindImage, Role: render.RoleImage, Prompt: "장갑", State: images.Failed, Error: "quota"},
		{Kind: render.KindImage, Role: render.RoleImage, Prompt: "공"},
		{Kind: render.KindCitations, Role: render.RoleReferences, Citations: []content.Citation{
			{URI: "https://a.example", Title: "A"},
			{URI: "https://b.example"},
		}},
	}

	out := preview.Text(ds, 0)
	assert.Contains(t, out, "겨울 팁")
	assert.Contains(t, out, "• 항목")
	assert.Contains(t, out, "장갑 [실패]")
	assert.Contains(t, out, "quota")
	assert.Contains(t, out, "공 [생성 전]")
	assert.Contains(t, out, "- A https://a.example")
	assert.Contains(t, out, "- https://b.example")

	assert.Empty(t, preview.Text(nil, 40))
}
