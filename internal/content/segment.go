package content

import (
	"strings"

	"github.com/alkime/teeshot/pkg/collections"
)

// Kind names a segment variant.
type Kind string

const (
	KindTitle       Kind = "title"
	KindCard        Kind = "card"
	KindSection     Kind = "section"
	KindIntro       Kind = "intro"
	KindTOC         Kind = "toc"
	KindSummary     Kind = "summary"
	KindConclusion  Kind = "conclusion"
	KindReferences  Kind = "references"
	KindTags        Kind = "tags"
	KindPostingText Kind = "posting_text"
	KindBannerField Kind = "banner_field"
	KindHashtags    Kind = "hashtags"
	KindImage       Kind = "image"
	KindKeywords    Kind = "keywords"
	KindHeading     Kind = "heading"
	KindParagraph   Kind = "paragraph"
)

// BannerKind names a banner sub-field.
type BannerKind string

const (
	Headline      BannerKind = "headline"
	Subheadline   BannerKind = "subheadline"
	Style         BannerKind = "style"
	AspectRatio   BannerKind = "aspect_ratio"
	DesignConcept BannerKind = "design_concept"
	TextElements  BannerKind = "text_elements"
	ImagePrompt   BannerKind = "image_prompt"
	Guidelines    BannerKind = "guidelines"
)

// Segment is one typed, contiguous unit of parsed content. The concrete
// types below are the only implementations.
type Segment interface {
	Kind() Kind
}

// Line is a body line. List items keep their bullet glyph in Text.
type Line struct {
	Text     string `json:"text"`
	ListItem bool   `json:"list_item,omitempty"`
}

// Title holds the title and its continuation lines.
type Title struct {
	Lines []string `json:"lines"`
}

// Slide is one card of a carousel or one scene of a video script.
type Slide struct {
	Index       int    `json:"index"`
	Heading     string `json:"heading"`
	Scene       bool   `json:"scene,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Body        []Line `json:"body,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty"`
	Source      string `json:"source,omitempty"`
}

// BlogSection is one numbered body section of a blog post.
type BlogSection struct {
	Index       int     `json:"index"`
	Heading     string  `json:"heading"`
	Body        []Line  `json:"body,omitempty"`
	Asides      []Aside `json:"asides,omitempty"`
	ImagePrompt string  `json:"image_prompt,omitempty"`
}

// Block is a singleton body block: intro, table of contents, summary,
// conclusion, references or tags.
type Block struct {
	Of     Kind    `json:"of"`
	Body   []Line  `json:"body,omitempty"`
	Asides []Aside `json:"asides,omitempty"`
}

// Aside is a heading that sits inside a blog section or intro without
// ending it. At is the number of body lines that precede it.
type Aside struct {
	At int `json:"at"`
	Heading
}

// PostingText is the free-form caption captured after the posting marker.
type PostingText struct {
	Body     []Line   `json:"body,omitempty"`
	BGM      string   `json:"bgm,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// BannerField is one field of a banner layout.
type BannerField struct {
	Field BannerKind `json:"field"`
	Lines []string   `json:"lines,omitempty"`
}

// HashtagLine is a standalone line of hashtags.
type HashtagLine struct {
	Tags []string `json:"tags"`
}

// ImagePromptRef is an image marker not owned by any card or section.
type ImagePromptRef struct {
	Prompt string `json:"prompt"`
	Cover  bool   `json:"cover,omitempty"`
}

// Keywords is the core keyword line.
type Keywords struct {
	Text string `json:"text"`
}

// Heading is a standalone heading line (scene headings, callouts, the
// representative image header).
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Paragraph is a line that belongs to no open segment.
type Paragraph struct {
	Line
}

func (*Title) Kind() Kind          { return KindTitle }
func (*Slide) Kind() Kind          { return KindCard }
func (*BlogSection) Kind() Kind    { return KindSection }
func (b *Block) Kind() Kind        { return b.Of }
func (*PostingText) Kind() Kind    { return KindPostingText }
func (*BannerField) Kind() Kind    { return KindBannerField }
func (*HashtagLine) Kind() Kind    { return KindHashtags }
func (*ImagePromptRef) Kind() Kind { return KindImage }
func (*Keywords) Kind() Kind       { return KindKeywords }
func (*Heading) Kind() Kind        { return KindHeading }
func (*Paragraph) Kind() Kind      { return KindParagraph }

// Text joins the title lines with single spaces.
func (t *Title) Text() string {
	return strings.Join(t.Lines, " ")
}

// Texts returns the body line texts.
func Texts(lines []Line) []string {
	return collections.Apply(lines, func(l Line) string { return l.Text })
}
