// Package sheet builds spreadsheet export rows from generated content.
package sheet

import (
	"regexp"
	"strings"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/pkg/collections"
)

// Row is one spreadsheet row.
type Row []string

// Card layout offsets.
const (
	cardSlots      = 10
	cardBlockWidth = 5
	colTitle       = 0
	colCategory    = 1
	colTags        = 2
	colCover       = 5
	colFirstCard   = 7
	colPosting     = colFirstCard + cardSlots*cardBlockWidth
	colKeywords    = colPosting + 1
	colSources     = colKeywords + 1
	colContent     = colSources + 2

	// CardColumns is the fixed width of a card-layout row.
	CardColumns = colContent + 2
)

var referencesBlock = regexp.MustCompile(`(?s)🔎 참고자료\n(.*?)(?:\n후속 제안:|$)`)

// Input is what a row is built from.
type Input struct {
	Raw       string
	Format    content.Format
	Category  string
	Statuses  images.Statuses
	Citations []content.Citation
}

// Build returns the export row for in, or nil when there is no content.
// Blog content uses the blog layout; every other format the card layout.
func Build(in Input) Row {
	if strings.TrimSpace(in.Raw) == "" {
		return nil
	}
	if in.Format == content.Blog {
		return buildBlog(in)
	}

	return buildCard(in)
}

func buildCard(in Input) Row {
	row := make(Row, CardColumns)
	segs := content.Parse(in.Raw, in.Format)

	var (
		cards       []*content.Slide
		tags        []string
		postingTags []string
		cover       string
	)
	for _, seg := range segs {
		switch s := seg.(type) {
		case *content.Title:
			if row[colTitle] == "" {
				row[colTitle] = WrapTitle(s.Text())
			}
		case *content.Slide:
			cards = append(cards, s)
		case *content.ImagePromptRef:
			if cover == "" && len(cards) == 0 {
				cover = s.Prompt
			}
		case *content.HashtagLine:
			tags = s.Tags
		case *content.PostingText:
			row[colPosting] = postingText(s)
			postingTags = s.Hashtags
		case *content.Keywords:
			row[colKeywords] = s.Text
		}
	}
	if len(tags) == 0 {
		tags = postingTags
	}

	row[colCategory] = in.Category
	for i := 0; i < 3 && i < len(tags); i++ {
		row[colTags+i] = tags[i]
	}
	row[colCover] = in.Statuses.RemoteURL(cover)

	for i, c := range cards {
		if i == cardSlots {
			break
		}
		base := colFirstCard + i*cardBlockWidth
		row[base] = c.Subtitle
		row[base+1] = strings.Join(content.Texts(c.Body), "\n")
		row[base+2] = in.Statuses.RemoteURL(c.ImagePrompt)
		row[base+3] = content.SourceValue(c.Source)
	}

	row[colSources] = sourcesText(in.Raw, in.Citations)
	row[colContent], row[colContent+1] = halves(in.Raw)

	return row
}

func buildBlog(in Input) Row {
	var (
		title                      string
		intro, summary, conclusion []string
		references, tags           []string
	)
	for _, seg := range content.Parse(in.Raw, content.Blog) {
		switch s := seg.(type) {
		case *content.Title:
			if title == "" {
				title = s.Text()
			}
		case *content.Block:
			body := content.Texts(s.Body)
			switch s.Of {
			case content.KindIntro:
				for _, l := range body {
					if !content.IsTOCItem(l) {
						intro = append(intro, l)
					}
				}
			case content.KindSummary:
				summary = append(summary, body...)
			case content.KindConclusion:
				conclusion = append(conclusion, body...)
			case content.KindReferences:
				references = append(references, body...)
			case content.KindTags:
				tags = append(tags, body...)
			}
		}
	}

	half1, half2 := halves(in.Raw)
	refsAndTags := joinNonEmpty("\n\n", strings.Join(references, "\n"), strings.Join(tags, "\n"))

	row := Row{
		in.Category,
		title,
		strings.Join(intro, "\n"),
		half1,
		half2,
		refsAndTags,
		strings.Join(summary, "\n"),
		strings.Join(conclusion, "\n"),
	}
	for _, p := range content.ImagePrompts(in.Raw) {
		if url := in.Statuses.RemoteURL(p); url != "" {
			row = append(row, url)
		}
	}

	return row
}

// postingText rebuilds the caption as it appeared: body, BGM line, hashtags.
func postingText(p *content.PostingText) string {
	lines := content.Texts(p.Body)
	if p.BGM != "" {
		lines = append(lines, "🎵 추천 BGM: "+p.BGM)
	}
	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for i, t := range p.Hashtags {
			tags[i] = "#" + t
		}
		lines = append(lines, strings.Join(tags, " "))
	}

	return strings.Join(lines, "\n")
}

// sourcesText returns the references block of raw, or the citations as
// "title (uri)" lines when there is none.
func sourcesText(raw string, citations []content.Citation) string {
	if m := referencesBlock.FindStringSubmatch(raw); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}

	return strings.Join(collections.Apply(citations, content.Citation.String), "\n")
}

// halves splits the trimmed raw content at its rune midpoint.
func halves(raw string) (string, string) {
	r := []rune(strings.TrimSpace(raw))
	mid := len(r) / 2

	return string(r[:mid]), string(r[mid:])
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := collections.Filter(parts, func(p string) bool { return p != "" })

	return strings.Join(kept, sep)
}
