package content

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SystemPrompt instructs the text generator to emit the marker convention the
// segmenter decodes.
const SystemPrompt = `당신은 골프 전문 소셜 미디어 콘텐츠 작가입니다. 요청된 형식에 맞춰 한국어 콘텐츠를 작성하세요.
모든 출력은 아래 줄머리 표식을 정확히 지켜야 합니다. 표식은 반드시 줄의 맨 앞에 둡니다.

공통
- 제목: <제목>
- 📸 이미지 프롬프트: <영문 이미지 생성 프롬프트>   (표지 이미지는 "(표지용)"을 덧붙임)
- 🔑 핵심키워드: <키워드1>, <키워드2>
- #해시태그1 #해시태그2 #해시태그3
- 후속 제안: <제안1>, <제안2>, <제안3>   (항상 마지막 줄)

A) INSTAGRAM-CARD
- 핵심 메시지: <한 문장>
- 카드 수: <n>
- [Card n] 으로 각 카드를 시작하고 그 아래에 💡 소제목:, 본문, 📸 이미지 프롬프트:, 🔎 출처: 를 둡니다.
  출처가 없으면 "🔎 출처: 자체 정보" 라고 씁니다.
- ✍️ 포스팅 글 아래에 캡션 본문, 🎵 추천 BGM:, 해시태그를 둡니다.
- 🔎 참고자료 아래에 참고한 자료를 한 줄씩 적습니다.

B) NAVER-BLOG/BAND
- ✅ 1. 제목 다음 줄에 제목을 씁니다.
- ✍️ 인트로 아래에 서론을 씁니다.
- [목차] 아래에 "1. 섹션 제목" 형식으로 목차를 씁니다.
- 📚 본문 다음에 [섹션 n 제목] <섹션 제목> 으로 각 섹션을 시작하고, 섹션마다 📸 이미지 프롬프트: 를 하나 둡니다.
- 🟧 핵심 요약, 🟪 결론, 🔎 참고자료, 🟫 태그 순서로 마무리합니다.

C) YOUTUBE-SHORTFORM
- [Scene n] 으로 각 장면을 시작하고 🎬 로 화면 연출을, 📸 이미지 프롬프트: 로 장면 이미지를 설명합니다.

D) ETC-BANNER
- 📰 헤드라인:, 📝 서브헤드라인:, 🎨 스타일:, 📐 비율:, 💭 디자인 컨셉, 🔤 텍스트 요소, 📸 이미지 프롬프트:, 📋 가이드라인 을 각각 줄머리에 둡니다.

JSON이나 코드 블록은 출력하지 마세요.`

// Input is the set of parameters a user fills in to request content.
type Input struct {
	Format       Format `json:"format"`
	Category     string `json:"category"`
	Keyword      string `json:"keyword"`
	UserText     string `json:"user_text,omitempty"`
	ReferenceURL string `json:"reference_url,omitempty"`
	CardCount    int    `json:"card_count,omitempty"`
	TextLength   int    `json:"text_length,omitempty"`
	SectionCount int    `json:"section_count,omitempty"`
	VideoLength  int    `json:"video_length,omitempty"`
	Tone         string `json:"tone,omitempty"`

	// Banner only.
	Headline    string `json:"headline,omitempty"`
	Subheadline string `json:"subheadline,omitempty"`
	BodyCopy    string `json:"body_copy,omitempty"`
	CTA         string `json:"cta,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Style       string `json:"style,omitempty"`
	Alignment   string `json:"alignment,omitempty"`
	ImageTool   string `json:"image_tool,omitempty"`
}

// DarkTheme is the banner theme value that flips the color guidance.
const DarkTheme = "다크모드"

// verbatimLimit is the length above which banner copy must be used as-is.
const verbatimLimit = 8

// BuildUserPrompt renders the labeled request template. reference is the
// already fetched text of Input.ReferenceURL, if any.
func BuildUserPrompt(in Input, reference string) string {
	var sb strings.Builder

	sb.WriteString("\n아래 항목을 채워서 그대로 입력하세요.\n\n")
	fmt.Fprintf(&sb, "형식: %s\n", in.Format.Hint())

	if in.Format == Banner {
		writeBannerCopy(&sb, in)
	} else {
		fmt.Fprintf(&sb, "카테고리: %s\n", in.Category)
		if strings.TrimSpace(in.Keyword) != "" {
			fmt.Fprintf(&sb, "키워드/주제: %s\n", in.Keyword)
		}
		if in.UserText != "" {
			fmt.Fprintf(&sb, "user_text: %s\n", in.UserText)
		}
	}

	if in.ReferenceURL != "" {
		sb.WriteString("\n[참고 URL 내용]\n")
		fmt.Fprintf(&sb, "URL: %s\n", in.ReferenceURL)
		fmt.Fprintf(&sb, "내용:\n%s\n", reference)
		sb.WriteString("\n위 URL의 내용을 참고하여 컨텐츠를 생성해주세요. URL의 내용을 정확히 반영하고, 출처를 명시해주세요.\n")
	}

	switch in.Format {
	case Card:
		fmt.Fprintf(&sb, "card_count: %d\n", in.CardCount)
	case Blog:
		fmt.Fprintf(&sb, "text_length: %d\n", in.TextLength)
		fmt.Fprintf(&sb, "section_count: %d\n", in.SectionCount)
	case Banner:
		fmt.Fprintf(&sb, "text_length: %d\n", in.TextLength)
	case Default:
		fmt.Fprintf(&sb, "video_length: %d\n", in.VideoLength)
	}

	if in.Format == Banner {
		writeBannerLayout(&sb, in)
	}

	if in.Tone != "" {
		fmt.Fprintf(&sb, "톤앤매너: %s\n", in.Tone)
	}

	return sb.String()
}

func writeBannerCopy(sb *strings.Builder, in Input) {
	headlineLen := utf8.RuneCountInString(in.Headline)
	fmt.Fprintf(sb, "헤드라인: %q\n", in.Headline)
	if headlineLen > verbatimLimit {
		sb.WriteString("\n🚨🚨🚨 절대 엄수 규칙 🚨🚨🚨\n")
		fmt.Fprintf(sb, "헤드라인 글자 수: %d자 (8글자 초과)\n", headlineLen)
		fmt.Fprintf(sb, "📝 원본 헤드라인: %q\n", in.Headline)
		sb.WriteString("\n❌ 절대 금지:\n")
		sb.WriteString("- 단어 추가 금지\n")
		sb.WriteString("- 단어 변경 금지\n")
		sb.WriteString("- 느낌표/물음표 제거 금지\n")
		sb.WriteString("- 띄어쓰기 변경 금지\n")
		sb.WriteString("- 어떠한 수정도 금지\n")
		sb.WriteString("\n✅ 필수 출력:\n")
		fmt.Fprintf(sb, "%q ← 이것을 정확히 100%% 그대로 사용하세요.\n\n", in.Headline)
	} else {
		fmt.Fprintf(sb, "헤드라인 글자 수: %d자 (8글자 이하 - 확장 가능)\n", headlineLen)
	}

	writeVerbatim(sb, "서브헤드라인", in.Subheadline)

	if strings.TrimSpace(in.BodyCopy) != "" {
		fmt.Fprintf(sb, "바디카피: %s\n", in.BodyCopy)
		fmt.Fprintf(sb, "바디카피 글자 수: %d자\n", utf8.RuneCountInString(in.BodyCopy))
		sb.WriteString("✅ 입력된 바디카피를 그대로 사용하세요.\n")
	} else {
		sb.WriteString("바디카피: (입력 없음 - 자동 생성)\n")
	}

	writeVerbatim(sb, "CTA", in.CTA)
}

func writeVerbatim(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		fmt.Fprintf(sb, "%s: (입력 없음 - 자동 생성)\n", label)

		return
	}

	n := utf8.RuneCountInString(value)
	fmt.Fprintf(sb, "%s: %q\n", label, value)
	if n > verbatimLimit {
		fmt.Fprintf(sb, "🚨 %s 글자 수: %d자 (8글자 초과) → 그대로 사용 필수\n", label, n)
		fmt.Fprintf(sb, "✅ 반드시 %q 정확히 그대로 출력하세요. 수정/추가/삭제 금지!\n\n", value)
	} else {
		fmt.Fprintf(sb, "%s 글자 수: %d자 (8글자 이하 - 확장 가능)\n", label, n)
	}
}

func writeBannerLayout(sb *strings.Builder, in Input) {
	if in.AspectRatio != "" {
		fmt.Fprintf(sb, "기본 비율: %s\n", in.AspectRatio)
	}
	if in.Theme != "" {
		fmt.Fprintf(sb, "테마: %s\n", in.Theme)
		if in.Theme == DarkTheme {
			sb.WriteString("⚠️ 중요: 어두운 배경(dark background)에 밝은 텍스트(light text)를 사용하세요.\n")
		} else {
			sb.WriteString("⚠️ 중요: 밝은 배경(light background)에 어두운 텍스트(dark text)를 사용하세요.\n")
		}
	}
	if in.Style != "" {
		fmt.Fprintf(sb, "시각적 스타일: %s\n", in.Style)
	}
	if in.Alignment != "" {
		fmt.Fprintf(sb, "정렬 옵션: %s\n", in.Alignment)
	}
	if in.ImageTool != "" {
		fmt.Fprintf(sb, "이미지 생성 프롬프트 모델: %s\n", in.ImageTool)
		fmt.Fprintf(sb, "⚠️ 중요: 선택된 모델(%s)에 최적화된 프롬프트를 작성하세요.\n", in.ImageTool)
	}
}

// Validate checks the fields a request cannot be built without.
func (in Input) Validate() error {
	if _, err := ParseFormat(string(in.Format)); err != nil {
		return err
	}
	if in.Format == Banner {
		if strings.TrimSpace(in.Headline) == "" {
			return errors.New("headline is required for banner content")
		}

		return nil
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.New("category is required")
	}

	return nil
}
