package content

import (
	"regexp"
	"strconv"
	"strings"
)

type marker int

const (
	mSuggestions marker = iota + 1
	mReferences
	mKeywords
	mPostingText
	mTitle
	mBlogTitle
	mCard
	mSubtitle
	mImagePrompt
	mCoverImage
	mSource
	mIntro
	mTOC
	mBody
	mSection
	mSummary
	mConclusion
	mTags
	mInfo
	mScene
	mCallout
	mHashtags
	mBannerField
)

// rule maps a line to a marker. unless vetoes a match when the line
// contains it.
type rule struct {
	kind   marker
	re     *regexp.Regexp
	unless string
	field  BannerKind
}

func (r rule) matches(line string) bool {
	if !r.re.MatchString(line) {
		return false
	}

	return r.unless == "" || !strings.Contains(line, r.unless)
}

// Rule tables are ordered: closing markers first, then specific openers
// before generic ones.
var (
	postingClosers = []rule{
		{kind: mSuggestions, re: patterns.suggestions},
		{kind: mReferences, re: patterns.references},
		{kind: mKeywords, re: patterns.keywords},
	}

	cardRules = []rule{
		{kind: mSuggestions, re: patterns.suggestions},
		{kind: mReferences, re: patterns.references},
		{kind: mKeywords, re: patterns.keywords},
		{kind: mPostingText, re: patterns.postingText},
		{kind: mTitle, re: patterns.title},
		{kind: mCard, re: patterns.card},
		{kind: mSubtitle, re: patterns.subtitle},
		{kind: mImagePrompt, re: patterns.imagePrompt},
		{kind: mCoverImage, re: patterns.coverImage},
		{kind: mSource, re: patterns.source},
		{kind: mInfo, re: patterns.info},
		{kind: mScene, re: patterns.scene},
		{kind: mCallout, re: patterns.callout},
		{kind: mHashtags, re: patterns.hashtag},
	}

	blogRules = []rule{
		{kind: mSuggestions, re: patterns.suggestions},
		{kind: mReferences, re: patterns.references},
		{kind: mKeywords, re: patterns.keywords},
		{kind: mPostingText, re: patterns.postingText},
		{kind: mBlogTitle, re: patterns.blogTitle},
		{kind: mTitle, re: patterns.title},
		{kind: mSection, re: patterns.section},
		{kind: mSection, re: patterns.sectionAlt},
		{kind: mIntro, re: patterns.intro},
		{kind: mTOC, re: patterns.toc},
		{kind: mBody, re: patterns.body},
		{kind: mSummary, re: patterns.summary},
		{kind: mConclusion, re: patterns.conclusion, unless: "참고"},
		{kind: mTags, re: patterns.tags},
		{kind: mImagePrompt, re: patterns.imagePrompt},
		{kind: mCoverImage, re: patterns.coverImage},
		{kind: mScene, re: patterns.scene},
		{kind: mCallout, re: patterns.callout},
		{kind: mHashtags, re: patterns.hashtag},
	}

	bannerRules = []rule{
		{kind: mSuggestions, re: patterns.suggestions},
		{kind: mTitle, re: patterns.title},
		{kind: mBannerField, re: patterns.headline, field: Headline},
		{kind: mBannerField, re: patterns.subheadline, field: Subheadline},
		{kind: mBannerField, re: patterns.style, field: Style},
		{kind: mBannerField, re: patterns.aspectRatio, field: AspectRatio},
		{kind: mBannerField, re: patterns.designConcept, field: DesignConcept},
		{kind: mBannerField, re: patterns.textElements, field: TextElements},
		{kind: mBannerField, re: patterns.imagePrompt, field: ImagePrompt},
		{kind: mBannerField, re: patterns.guidelines, field: Guidelines},
		{kind: mHashtags, re: patterns.hashtag},
	}
)

func rulesFor(f Format) []rule {
	switch f {
	case Blog:
		return blogRules
	case Banner:
		return bannerRules
	default:
		return cardRules
	}
}

type transition func(s *segmenter, line string, r rule)

var transitions = map[marker]transition{
	mSuggestions: (*segmenter).closeAll,
	mBody:        (*segmenter).closeAll,
	mReferences:  (*segmenter).openBlock,
	mIntro:       (*segmenter).openBlock,
	mTOC:         (*segmenter).openBlock,
	mSummary:     (*segmenter).openBlock,
	mConclusion:  (*segmenter).openBlock,
	mTags:        (*segmenter).openBlock,
	mKeywords:    (*segmenter).keywords,
	mPostingText: (*segmenter).openPosting,
	mTitle:       (*segmenter).openTitle,
	mBlogTitle:   (*segmenter).openTitle,
	mCard:        (*segmenter).openCard,
	mSubtitle:    (*segmenter).subtitle,
	mImagePrompt: (*segmenter).imagePrompt,
	mCoverImage:  (*segmenter).coverImage,
	mSource:      (*segmenter).source,
	mSection:     (*segmenter).openSection,
	mInfo:        (*segmenter).info,
	mScene:       (*segmenter).heading,
	mCallout:     (*segmenter).heading,
	mHashtags:    (*segmenter).hashtags,
	mBannerField: (*segmenter).openBannerField,
}

var blockKinds = map[marker]Kind{
	mReferences: KindReferences,
	mIntro:      KindIntro,
	mTOC:        KindTOC,
	mSummary:    KindSummary,
	mConclusion: KindConclusion,
	mTags:       KindTags,
}

// segmenter walks lines keeping exactly one open segment. Segments are
// appended to out when opened, so out is always in source order; a segment
// stops changing once open moves past it.
type segmenter struct {
	format   Format
	rules    []rule
	out      []Segment
	open     Segment
	cards    int
	sections int
}

// Parse segments generated content. It cleans raw first and never fails:
// unrecognized lines become paragraphs.
func Parse(raw string, format Format) []Segment {
	s := &segmenter{
		format: format,
		rules:  rulesFor(format),
	}
	for _, line := range Lines(Clean(raw)) {
		s.feed(line)
	}
	s.open = nil

	return s.out
}

func (s *segmenter) feed(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	rules := s.rules
	if p, ok := s.open.(*PostingText); ok {
		if r, hit := match(postingClosers, line); hit {
			transitions[r.kind](s, line, r)

			return
		}
		s.capture(p, line)

		return
	}

	if r, hit := match(rules, line); hit {
		transitions[r.kind](s, line, r)

		return
	}

	s.content(line)
}

func match(rules []rule, line string) (rule, bool) {
	for _, r := range rules {
		if r.matches(line) {
			return r, true
		}
	}

	return rule{}, false
}

func (s *segmenter) start(seg Segment) {
	s.out = append(s.out, seg)
	s.open = seg
}

func (s *segmenter) emit(seg Segment) {
	s.open = nil
	s.out = append(s.out, seg)
}

func (s *segmenter) closeAll(string, rule) {
	s.open = nil
}

func (s *segmenter) openBlock(_ string, r rule) {
	kind := blockKinds[r.kind]
	if b, ok := s.open.(*Block); ok && b.Of == kind {
		return
	}
	s.start(&Block{Of: kind})
}

func (s *segmenter) keywords(line string, r rule) {
	s.emit(&Keywords{Text: after(r.re, line)})
}

func (s *segmenter) openPosting(string, rule) {
	if _, ok := s.open.(*PostingText); ok {
		return
	}
	s.start(&PostingText{})
}

func (s *segmenter) openTitle(line string, r rule) {
	value := after(r.re, line)
	if t, ok := s.open.(*Title); ok && len(t.Lines) == 0 {
		if value != "" {
			t.Lines = append(t.Lines, value)
		}

		return
	}

	t := &Title{}
	if value != "" {
		t.Lines = append(t.Lines, value)
	}
	s.start(t)
}

func (s *segmenter) openCard(line string, r rule) {
	m := r.re.FindStringSubmatch(line)
	index := s.cards + 1
	if n, err := strconv.Atoi(m[2]); err == nil {
		index = n
	}
	s.cards = index

	heading := strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(line))
	s.start(&Slide{
		Index:   index,
		Heading: heading,
		Scene:   m[1] == "Scene",
	})
}

func (s *segmenter) subtitle(line string, r rule) {
	if c, ok := s.open.(*Slide); ok {
		c.Subtitle = after(r.re, line)

		return
	}
	s.paragraph(line)
}

func (s *segmenter) imagePrompt(line string, _ rule) {
	prompt, ok := PromptFromLine(line)
	if !ok {
		return
	}

	switch open := s.open.(type) {
	case *Slide:
		open.ImagePrompt = prompt
	case *BlogSection:
		open.ImagePrompt = prompt
	default:
		cover := strings.Contains(line, markerCoverSuffix) || (s.format == Card && s.cards == 0)
		s.emit(&ImagePromptRef{Prompt: prompt, Cover: cover})
	}
}

func (s *segmenter) coverImage(line string, _ rule) {
	h := Heading{Text: strings.TrimSpace(strings.TrimPrefix(line, "📸")), Level: 3}
	if s.aside(line, h) {
		return
	}
	s.emit(&h)
}

func (s *segmenter) source(line string, r rule) {
	if c, ok := s.open.(*Slide); ok {
		c.Source = after(r.re, line)

		return
	}
	s.paragraph(line)
}

func (s *segmenter) openSection(line string, r rule) {
	m := r.re.FindStringSubmatch(line)
	index := s.sections + 1
	if n, err := strconv.Atoi(m[1]); err == nil {
		index = n
	}
	s.sections = index

	heading, _, _ := strings.Cut(after(r.re, line), "–")
	s.start(&BlogSection{
		Index:   index,
		Heading: strings.TrimSpace(heading),
	})
}

func (s *segmenter) info(line string, _ rule) {
	s.paragraph(line)
}

func (s *segmenter) heading(line string, r rule) {
	level := 3
	if r.kind == mCallout {
		level = 4
	}
	h := Heading{Text: line, Level: level}
	if s.aside(line, h) {
		return
	}
	s.emit(&h)
}

// aside keeps a blog heading inside the open intro or section instead of
// closing it. Intro meta-commentary is dropped. It reports whether the line
// was consumed.
func (s *segmenter) aside(line string, h Heading) bool {
	if s.format != Blog {
		return false
	}

	switch open := s.open.(type) {
	case *BlogSection:
		open.Asides = append(open.Asides, Aside{At: len(open.Body), Heading: h})
	case *Block:
		if open.Of != KindIntro {
			return false
		}
		if !IsIntroNoise(line) {
			open.Asides = append(open.Asides, Aside{At: len(open.Body), Heading: h})
		}
	default:
		return false
	}

	return true
}

func (s *segmenter) hashtags(line string, _ rule) {
	if b, ok := s.open.(*Block); ok && b.Of == KindTags {
		b.Body = append(b.Body, Line{Text: line})

		return
	}
	s.emit(&HashtagLine{Tags: ParseHashtags(line)})
}

func (s *segmenter) openBannerField(line string, r rule) {
	f := &BannerField{Field: r.field}
	value := after(r.re, line)
	if r.field == ImagePrompt {
		value, _ = PromptFromLine(line)
	}
	if value != "" {
		f.Lines = append(f.Lines, value)
	}
	s.start(f)
}

func (s *segmenter) paragraph(line string) {
	s.emit(&Paragraph{Line: toLine(line)})
}

func (s *segmenter) capture(p *PostingText, line string) {
	switch {
	case patterns.bgm.MatchString(line):
		p.BGM = after(patterns.bgm, line)
	case patterns.hashtag.MatchString(line):
		p.Hashtags = append(p.Hashtags, ParseHashtags(line)...)
	default:
		p.Body = append(p.Body, toLine(line))
	}
}

func (s *segmenter) content(line string) {
	switch open := s.open.(type) {
	case *Title:
		if s.format == Blog && (patterns.example.MatchString(line) || patterns.bracketOnly.MatchString(line)) {
			return
		}
		open.Lines = append(open.Lines, line)
	case *Slide:
		open.Body = append(open.Body, toLine(line))
	case *BlogSection:
		open.Body = append(open.Body, toLine(line))
	case *Block:
		if open.Of == KindIntro && IsIntroNoise(line) {
			return
		}
		open.Body = append(open.Body, toLine(line))
	case *BannerField:
		open.Lines = append(open.Lines, line)
	default:
		s.paragraph(line)
	}
}

func toLine(line string) Line {
	return Line{Text: line, ListItem: IsListItem(line)}
}
