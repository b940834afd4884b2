package render

import (
	"strings"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
)

const (
	labelBody       = "본문 구성"
	labelIntro      = "서론"
	labelTOC        = "본문"
	labelSummary    = "핵심 요약"
	labelConclusion = "결론"
	labelReferences = "참고자료"
	labelTags       = "키워드"
	labelPosting    = "✍️ 포스팅 글"
	labelCitations  = "AI가 참고한 자료"
)

var bannerLabels = map[content.BannerKind]string{
	content.Headline:      "헤드라인",
	content.Subheadline:   "서브헤드라인",
	content.Style:         "스타일",
	content.AspectRatio:   "비율",
	content.DesignConcept: "디자인 컨셉",
	content.TextElements:  "텍스트 요소",
	content.ImagePrompt:   "이미지 프롬프트",
	content.Guidelines:    "가이드라인",
}

var blockRoles = map[content.Kind]struct {
	role  Role
	label string
}{
	content.KindIntro:      {RoleIntro, labelIntro},
	content.KindTOC:        {RoleTOC, labelTOC},
	content.KindSummary:    {RoleSummary, labelSummary},
	content.KindConclusion: {RoleConclusion, labelConclusion},
	content.KindReferences: {RoleReferences, labelReferences},
	content.KindTags:       {RoleTags, labelTags},
}

// Options carries the per-render inputs besides the segments.
type Options struct {
	Format    content.Format
	Statuses  images.Statuses
	Keyword   string
	Citations []content.Citation
}

type renderer struct {
	opts         Options
	out          []Descriptor
	sections     int
	citationsOut bool
}

// Render maps segments to descriptors in order. It is total: any segment
// list, including nil, yields a descriptor list.
func Render(segments []content.Segment, opts Options) []Descriptor {
	r := &renderer{opts: opts}
	for _, seg := range segments {
		r.segment(seg)
	}
	r.trailingCitations()

	return r.out
}

func (r *renderer) blog() bool {
	return r.opts.Format == content.Blog
}

func (r *renderer) segment(seg content.Segment) {
	switch s := seg.(type) {
	case *content.Title:
		r.title(s)
	case *content.Slide:
		r.card(s)
	case *content.BlogSection:
		r.section(s)
	case *content.Block:
		r.block(s)
	case *content.PostingText:
		r.posting(s)
	case *content.BannerField:
		r.banner(s)
	case *content.HashtagLine:
		r.para(RoleHashtags, hashtagText(s.Tags), false)
	case *content.ImagePromptRef:
		role := RoleImage
		if s.Cover {
			role = RoleCover
		}
		r.image(role, s.Prompt)
	case *content.Keywords:
		r.para(RoleKeywords, "🔑 핵심키워드: "+s.Text, false)
	case *content.Heading:
		r.standalone(*s)
	case *content.Paragraph:
		r.para(RoleText, s.Text, s.ListItem)
	}
}

func (r *renderer) title(t *content.Title) {
	if len(t.Lines) == 0 {
		return
	}
	level := 2
	if r.blog() {
		level = 1
	}
	text := strings.Join(t.Lines, "\n")
	r.out = append(r.out, Descriptor{
		Kind:  KindHeading,
		Role:  RoleTitle,
		Text:  text,
		Level: level,
		Spans: Highlight(text, r.opts.Keyword),
	})
}

func (r *renderer) card(c *content.Slide) {
	r.heading(RoleCard, c.Heading, 3)
	if c.Subtitle != "" {
		r.heading(RoleSubtitle, c.Subtitle, 4)
	}
	r.lines(RoleCard, c.Body)
	if c.ImagePrompt != "" {
		r.image(RoleImage, c.ImagePrompt)
	}
	if c.Source != "" {
		r.para(RoleSource, "🔎 출처: "+c.Source, false)
	}
}

func (r *renderer) section(s *content.BlogSection) {
	if r.blog() && r.sections == 0 {
		r.heading(RoleLabel, labelBody, 2)
	}
	r.sections++

	r.heading(RoleSection, s.Heading, 3)
	r.body(RoleSection, s.Body, s.Asides)
	if s.ImagePrompt != "" {
		r.image(RoleImage, s.ImagePrompt)
	}
}

func (r *renderer) block(b *content.Block) {
	meta, ok := blockRoles[b.Of]
	if !ok {
		return
	}
	if b.Of == content.KindTOC && r.blog() {
		return
	}

	cite := b.Of == content.KindReferences && r.blog() && len(r.opts.Citations) > 0
	if len(b.Body) == 0 && len(b.Asides) == 0 && !cite {
		return
	}

	r.heading(RoleLabel, meta.label, 4)
	r.body(meta.role, b.Body, b.Asides)
	if cite {
		r.citations(r.opts.Citations)
	}
}

func (r *renderer) posting(p *content.PostingText) {
	if len(p.Body) == 0 && p.BGM == "" && len(p.Hashtags) == 0 {
		return
	}
	r.heading(RolePosting, labelPosting, 3)
	r.lines(RolePosting, p.Body)
	if p.BGM != "" {
		r.para(RoleBGM, "🎵 추천 BGM: "+p.BGM, false)
	}
	if len(p.Hashtags) > 0 {
		r.para(RoleHashtags, hashtagText(p.Hashtags), false)
	}
}

func (r *renderer) banner(f *content.BannerField) {
	r.heading(RoleLabel, bannerLabels[f.Field], 4)
	if f.Field == content.ImagePrompt {
		if prompt := strings.TrimSpace(strings.Join(f.Lines, " ")); prompt != "" {
			r.image(RoleImage, prompt)
		}

		return
	}
	for _, l := range f.Lines {
		r.para(RoleBanner, l, content.IsListItem(l))
	}
}

func (r *renderer) trailingCitations() {
	if r.citationsOut || len(r.opts.Citations) == 0 {
		return
	}
	label := labelCitations
	if r.blog() {
		label = labelReferences
	}
	r.heading(RoleLabel, label, 4)
	r.citations(r.opts.Citations)
}

func (r *renderer) citations(cs []content.Citation) {
	r.citationsOut = true
	r.out = append(r.out, Descriptor{
		Kind:      KindCitations,
		Role:      RoleReferences,
		Citations: cs,
	})
}

func (r *renderer) image(role Role, prompt string) {
	st := r.opts.Statuses.Lookup(prompt)
	r.out = append(r.out, Descriptor{
		Kind:     KindImage,
		Role:     role,
		Prompt:   strings.TrimSpace(prompt),
		State:    st.State,
		Actions:  actionsFor(st.State),
		LocalURL: st.LocalURL,
		Error:    st.Err,
	})
}

func (r *renderer) heading(role Role, text string, level int) {
	r.out = append(r.out, Descriptor{Kind: KindHeading, Role: role, Text: text, Level: level})
}

func (r *renderer) para(role Role, text string, listItem bool) {
	r.out = append(r.out, Descriptor{Kind: KindParagraph, Role: role, Text: text, ListItem: listItem})
}

func (r *renderer) standalone(h content.Heading) {
	role := RoleScene
	if h.Level > 3 {
		role = RoleCallout
	}
	r.heading(role, h.Text, h.Level)
}

// body renders lines with asides placed before the line they precede.
func (r *renderer) body(role Role, lines []content.Line, asides []content.Aside) {
	next := 0
	for i, l := range lines {
		for next < len(asides) && asides[next].At <= i {
			r.standalone(asides[next].Heading)
			next++
		}
		r.para(role, l.Text, l.ListItem)
	}
	for _, a := range asides[next:] {
		r.standalone(a.Heading)
	}
}

func (r *renderer) lines(role Role, lines []content.Line) {
	for _, l := range lines {
		r.para(role, l.Text, l.ListItem)
	}
}

func hashtagText(tags []string) string {
	var sb strings.Builder
	for i, t := range tags {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('#')
		sb.WriteString(t)
	}

	return sb.String()
}
