package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

var markdown = goldmark.New()

// HTML renders descriptors as an HTML fragment. Paragraph text is treated as
// inline markdown; raw HTML inside it is dropped by the converter. All other
// text is escaped.
func HTML(ds []Descriptor) (string, error) {
	var buf bytes.Buffer
	for _, d := range ds {
		var err error
		switch d.Kind {
		case KindHeading:
			writeHeading(&buf, d)
		case KindParagraph:
			err = writeParagraph(&buf, d)
		case KindImage:
			writeImage(&buf, d)
		case KindCitations:
			writeCitations(&buf, d)
		}
		if err != nil {
			return "", fmt.Errorf("failed to render %s descriptor: %w", d.Kind, err)
		}
	}

	return buf.String(), nil
}

func writeHeading(buf *bytes.Buffer, d Descriptor) {
	level := min(max(d.Level, 1), 6)
	fmt.Fprintf(buf, `<h%d class="%s">`, level, d.Role)
	spans := d.Spans
	if len(spans) == 0 {
		spans = []Span{{Text: d.Text}}
	}
	for _, s := range spans {
		text := strings.ReplaceAll(html.EscapeString(s.Text), "\n", "<br>")
		if s.Highlight {
			fmt.Fprintf(buf, `<span class="highlight">%s</span>`, text)
			continue
		}
		buf.WriteString(text)
	}
	fmt.Fprintf(buf, "</h%d>\n", level)
}

func writeParagraph(buf *bytes.Buffer, d Descriptor) error {
	class := string(d.Role)
	if d.ListItem {
		class += " list-item"
	}
	fmt.Fprintf(buf, `<div class="%s">`, class)
	if err := markdown.Convert([]byte(d.Text), buf); err != nil {
		return err
	}
	buf.WriteString("</div>\n")
	return nil
}

func writeImage(buf *bytes.Buffer, d Descriptor) {
	actions := make([]string, 0, len(d.Actions))
	for _, a := range d.Actions {
		actions = append(actions, string(a))
	}
	fmt.Fprintf(buf, `<figure class="%s state-%s" data-prompt="%s" data-actions="%s">`,
		d.Role, d.State, html.EscapeString(d.Prompt), strings.Join(actions, ","))
	if d.LocalURL != "" {
		fmt.Fprintf(buf, `<img src="%s" alt="%s">`, html.EscapeString(d.LocalURL), html.EscapeString(d.Prompt))
	}
	caption := d.Prompt
	if d.Error != "" {
		caption = d.Error
	}
	fmt.Fprintf(buf, "<figcaption>%s</figcaption></figure>\n", html.EscapeString(caption))
}

func writeCitations(buf *bytes.Buffer, d Descriptor) {
	buf.WriteString(`<ul class="citations">`)
	for _, c := range d.Citations {
		fmt.Fprintf(buf, `<li><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></li>`,
			html.EscapeString(c.URI), html.EscapeString(c.Label()))
	}
	buf.WriteString("</ul>\n")
}
