package content

import (
	"regexp"
	"strings"
)

// Literal markers the generator is instructed to emit. Emoji that commonly
// carry a variation selector are matched with or without it.
const (
	markerImagePrompt = "📸 이미지 프롬프트:"
	markerCoverSuffix = "(표지용)"
	markerReferences  = "🔎 참고자료"
	markerSuggestions = "후속 제안:"
	ownInformation    = "자체 정보"
)

var patterns = struct {
	fencedJSON    *regexp.Regexp
	formatLabel   *regexp.Regexp
	requestObject *regexp.Regexp

	cardHeader      *regexp.Regexp
	blogSignature   *regexp.Regexp
	bannerSignature *regexp.Regexp

	title       *regexp.Regexp
	blogTitle   *regexp.Regexp
	card        *regexp.Regexp
	subtitle    *regexp.Regexp
	imagePrompt *regexp.Regexp
	coverImage  *regexp.Regexp
	source      *regexp.Regexp
	references  *regexp.Regexp
	keywords    *regexp.Regexp
	postingText *regexp.Regexp
	bgm         *regexp.Regexp
	hashtag     *regexp.Regexp
	suggestions *regexp.Regexp
	intro       *regexp.Regexp
	toc         *regexp.Regexp
	body        *regexp.Regexp
	section     *regexp.Regexp
	sectionAlt  *regexp.Regexp
	summary     *regexp.Regexp
	conclusion  *regexp.Regexp
	tags        *regexp.Regexp
	info        *regexp.Regexp
	scene       *regexp.Regexp
	callout     *regexp.Regexp
	listItem    *regexp.Regexp
	tocItem     *regexp.Regexp
	example     *regexp.Regexp
	bracketOnly *regexp.Regexp

	headline      *regexp.Regexp
	subheadline   *regexp.Regexp
	style         *regexp.Regexp
	aspectRatio   *regexp.Regexp
	designConcept *regexp.Regexp
	textElements  *regexp.Regexp
	guidelines    *regexp.Regexp
}{
	fencedJSON:    regexp.MustCompile("(?s)```json.*?```"),
	formatLabel:   regexp.MustCompile(`(?m)^[A-D]\)\s+(INSTAGRAM-CARD|NAVER-BLOG/BAND|YOUTUBE-SHORTFORM|ETC-BANNER):[ \t]*`),
	requestObject: regexp.MustCompile(`(?ms)^\{.*?"생성요청".*?\}`),

	cardHeader:      regexp.MustCompile(`\[(?:Card|Scene)\s*\d+\]`),
	blogSignature:   regexp.MustCompile(`\[섹션\s*\d+\s*제목\]|✍\x{FE0F}?\s*인트로|✅\s*1\.\s*제목`),
	bannerSignature: regexp.MustCompile(`(?m)^(?:📐\s*비율|🎨\s*스타일|💭\s*디자인\s*컨셉)`),

	title:       regexp.MustCompile(`^제목(\(.*?\))?\s*:\s*`),
	blogTitle:   regexp.MustCompile(`^✅\s*1\.\s*제목\s*:?\s*`),
	card:        regexp.MustCompile(`^\[(Card|Scene)\s*(\d*)\]`),
	subtitle:    regexp.MustCompile(`^💡\s*소제목\s*:\s*`),
	imagePrompt: regexp.MustCompile(`^📸\s*이미지\s*프롬프트\s*(\(표지용\))?\s*:\s*`),
	coverImage:  regexp.MustCompile(`^📸.*대표`),
	source:      regexp.MustCompile(`^🔎\s*출처\s*:\s*`),
	references:  regexp.MustCompile(`^🔎\s*참고`),
	keywords:    regexp.MustCompile(`^🔑\s*(?:핵심\s*키워드\s*:?)?\s*`),
	postingText: regexp.MustCompile(`^✍\x{FE0F}?\s*포스팅\s*글`),
	bgm:         regexp.MustCompile(`^🎵\s*(?:추천\s*BGM\s*:?)?\s*`),
	hashtag:     regexp.MustCompile(`^#`),
	suggestions: regexp.MustCompile(`^후속\s*제안\s*:`),
	intro:       regexp.MustCompile(`^(?:✍\x{FE0F}?\s*인트로|✔)`),
	toc:         regexp.MustCompile(`^(?:\[\s*목차\s*\]|📌.*목차)`),
	body:        regexp.MustCompile(`^(?:📚\s*본문|🟦)`),
	section:     regexp.MustCompile(`^\[섹션\s*(\d+)\s*제목\]\s*`),
	sectionAlt:  regexp.MustCompile(`^🔹\s*(\d+)\.\s*`),
	summary:     regexp.MustCompile(`^🟧|핵심\s*요약`),
	conclusion:  regexp.MustCompile(`^(?:🟪|결론)`),
	tags:        regexp.MustCompile(`^(?:🟫|태그)`),
	info:        regexp.MustCompile(`^(?:핵심\s*메시지|카드\s*수|카드별\s*콘텐츠)`),
	scene:       regexp.MustCompile(`^🎬`),
	callout:     regexp.MustCompile(`^✅`),
	listItem:    regexp.MustCompile(`^[•\-\*]\s`),
	tocItem:     regexp.MustCompile(`^\d+\.\s`),
	example:     regexp.MustCompile(`^예\s*:`),
	bracketOnly: regexp.MustCompile(`^\[[^\]]*\]$`),

	headline:      regexp.MustCompile(`^📰\s*헤드라인\s*:?\s*`),
	subheadline:   regexp.MustCompile(`^📝\s*서브\s*헤드라인\s*:?\s*`),
	style:         regexp.MustCompile(`^🎨\s*스타일\s*:?\s*`),
	aspectRatio:   regexp.MustCompile(`^📐\s*비율\s*:?\s*`),
	designConcept: regexp.MustCompile(`^💭\s*디자인\s*컨셉\s*:?\s*`),
	textElements:  regexp.MustCompile(`^🔤\s*텍스트\s*요소\s*:?\s*`),
	guidelines:    regexp.MustCompile(`^📋\s*가이드라인\s*:?\s*`),
}

// introNoise matches explanatory lines the generator sometimes leaves in the
// intro. Kept as a fixed list; it is not meant to be exhaustive.
var introNoise = []*regexp.Regexp{
	regexp.MustCompile(`^[✔✅]\x{FE0F}?\s*(문제|해결책|핵심키워드|키워드)`),
	regexp.MustCompile(`\(첫 문단\)|가장 중요한 영역|키워드 총.*회`),
	regexp.MustCompile(`^[•\-\*]\s*(문제|해결책)`),
}

// IsIntroNoise reports whether an intro line is generator meta-commentary.
func IsIntroNoise(line string) bool {
	for _, re := range introNoise {
		if re.MatchString(line) {
			return true
		}
	}

	return false
}

// IsListItem reports whether a trimmed line starts with a bullet glyph.
func IsListItem(line string) bool {
	return patterns.listItem.MatchString(line)
}

// IsTOCItem reports whether a trimmed line looks like "1. something".
func IsTOCItem(line string) bool {
	return patterns.tocItem.MatchString(line)
}

// after returns line with the prefix matched by re removed and trimmed.
func after(re *regexp.Regexp, line string) string {
	loc := re.FindStringIndex(line)
	if loc == nil || loc[0] != 0 {
		return strings.TrimSpace(line)
	}

	return strings.TrimSpace(line[loc[1]:])
}

// PromptFromLine extracts the prompt from an image-prompt line. The cover
// suffix is dropped so cover and body prompts share one key space.
func PromptFromLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !patterns.imagePrompt.MatchString(line) {
		return "", false
	}

	prompt := strings.TrimSpace(strings.ReplaceAll(after(patterns.imagePrompt, line), markerCoverSuffix, ""))

	return prompt, prompt != ""
}

// ParseHashtags splits a hashtag line into tags without the leading '#'.
func ParseHashtags(line string) []string {
	fields := strings.Fields(strings.ReplaceAll(line, "#", " "))
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tags = append(tags, f)
		}
	}

	return tags
}

// SourceValue normalizes a card source, mapping "own information" to empty.
func SourceValue(v string) string {
	v = strings.TrimSpace(v)
	if v == ownInformation {
		return ""
	}

	return v
}
