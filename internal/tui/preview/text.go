package preview

import (
	"fmt"
	"strings"

	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/internal/tui/style"
	"github.com/charmbracelet/lipgloss"
)

var stateLabels = map[images.State]string{
	images.Idle:    "생성 전",
	images.Pending: "생성 중...",
	images.Ready:   "완료",
	images.Failed:  "실패",
}

// Text renders descriptors for a terminal of the given width.
func Text(ds []render.Descriptor, width int) string {
	var blocks []string
	for _, d := range ds {
		if b := block(d); b != "" {
			blocks = append(blocks, b)
		}
	}

	out := strings.Join(blocks, "\n")
	if out == "" || width <= 0 {
		return out
	}

	return lipgloss.NewStyle().Width(width).Render(out)
}

func block(d render.Descriptor) string {
	switch d.Kind {
	case render.KindHeading:
		return heading(d)
	case render.KindParagraph:
		if d.ListItem {
			return style.Bullet.Render("•") + " " + d.Text
		}
		return d.Text
	case render.KindImage:
		return image(d)
	case render.KindCitations:
		return citations(d)
	default:
		return d.Text
	}
}

func heading(d render.Descriptor) string {
	switch {
	case d.Role == render.RoleTitle:
		return "\n" + spans(d, style.Title) + "\n"
	case d.Role == render.RoleLabel:
		return "\n" + style.Subtitle.Render(d.Text)
	case d.Level <= 2:
		return "\n" + spans(d, style.Label)
	default:
		return spans(d, style.Label)
	}
}

func spans(d render.Descriptor, base lipgloss.Style) string {
	if len(d.Spans) == 0 {
		return base.Render(d.Text)
	}

	var sb strings.Builder
	for _, sp := range d.Spans {
		if sp.Highlight {
			sb.WriteString(style.Highlight.Render(sp.Text))
		} else {
			sb.WriteString(base.Render(sp.Text))
		}
	}

	return sb.String()
}

func image(d render.Descriptor) string {
	state := d.State
	if state == "" {
		state = images.Idle
	}

	badge := style.ForState(state).Render("[" + stateLabels[state] + "]")
	line := fmt.Sprintf("📸 %s %s", style.Muted.Render(d.Prompt), badge)
	if d.Error != "" {
		line += "\n   " + style.Error.Render(d.Error)
	}

	return line
}

func citations(d render.Descriptor) string {
	var sb strings.Builder
	if d.Text != "" {
		sb.WriteString("\n" + style.Subtitle.Render(d.Text))
	}
	for _, c := range d.Citations {
		sb.WriteString("\n" + style.Bullet.Render("-") + " " + c.Label())
		if c.Title != "" && c.URI != "" {
			sb.WriteString(" " + style.Muted.Render(c.URI))
		}
	}

	return strings.TrimPrefix(sb.String(), "\n")
}
