// Package render turns parsed segments and image statuses into display
// descriptors, and descriptors into HTML fragments.
package render

import (
	"regexp"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
)

// DescriptorKind names a descriptor variant.
type DescriptorKind string

const (
	KindHeading   DescriptorKind = "heading"
	KindParagraph DescriptorKind = "paragraph"
	KindImage     DescriptorKind = "image"
	KindCitations DescriptorKind = "citations"
)

// Role is a layout hint for the presentation layer.
type Role string

const (
	RoleTitle      Role = "title"
	RoleLabel      Role = "label"
	RoleCard       Role = "card"
	RoleSubtitle   Role = "subtitle"
	RoleSource     Role = "source"
	RoleSection    Role = "section"
	RoleIntro      Role = "intro"
	RoleTOC        Role = "toc"
	RoleSummary    Role = "summary"
	RoleConclusion Role = "conclusion"
	RoleReferences Role = "references"
	RoleTags       Role = "tags"
	RolePosting    Role = "posting"
	RoleBGM        Role = "bgm"
	RoleHashtags   Role = "hashtags"
	RoleKeywords   Role = "keywords"
	RoleBanner     Role = "banner"
	RoleCover      Role = "cover"
	RoleImage      Role = "image"
	RoleScene      Role = "scene"
	RoleCallout    Role = "callout"
	RoleText       Role = "text"
)

// Action is an affordance offered on an image slot.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionCopy     Action = "copy"
	ActionDownload Action = "download"
	ActionEdit     Action = "edit"
	ActionRetry    Action = "retry"
)

// Span is a piece of heading text, optionally highlighted.
type Span struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Descriptor is one presentational unit.
type Descriptor struct {
	Kind      DescriptorKind     `json:"kind"`
	Role      Role               `json:"role"`
	Text      string             `json:"text,omitempty"`
	Level     int                `json:"level,omitempty"`
	ListItem  bool               `json:"list_item,omitempty"`
	Spans     []Span             `json:"spans,omitempty"`
	Prompt    string             `json:"prompt,omitempty"`
	State     images.State       `json:"state,omitempty"`
	Actions   []Action           `json:"actions,omitempty"`
	LocalURL  string             `json:"local_url,omitempty"`
	Error     string             `json:"error,omitempty"`
	Citations []content.Citation `json:"citations,omitempty"`
}

// Highlight splits text into spans marking every case-insensitive
// occurrence of keyword.
func Highlight(text, keyword string) []Span {
	if keyword == "" {
		return []Span{{Text: text}}
	}

	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
	var spans []Span
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Highlight: true})
		last = loc[1]
	}
	if last < len(text) || len(spans) == 0 {
		spans = append(spans, Span{Text: text[last:]})
	}

	return spans
}

// actionsFor maps an image state to its affordances. Pending has none.
func actionsFor(state images.State) []Action {
	switch state {
	case images.Pending:
		return nil
	case images.Ready:
		return []Action{ActionDownload, ActionEdit}
	case images.Failed:
		return []Action{ActionRetry}
	default:
		return []Action{ActionGenerate, ActionCopy}
	}
}
