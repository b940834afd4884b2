package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	raw := "B) NAVER-BLOG/BAND: \n{\n  \"생성요청\": \"블로그\"\n}\n```json\n{\"a\":1}\n```\n✅ 1. 제목\n가이드\n"
	assert.Equal(t, "✅ 1. 제목\n가이드", Clean(raw))
	assert.Equal(t, Clean(raw), Clean(Clean(raw)))
}

func TestSplitSuggestions(t *testing.T) {
	t.Run("with suggestions", func(t *testing.T) {
		body, got := SplitSuggestions("제목: 퍼팅\n본문\n후속 제안: 어프로치, 벙커샷 , ,드라이버")
		assert.Equal(t, "제목: 퍼팅\n본문", body)
		assert.Equal(t, []string{"어프로치", "벙커샷", "드라이버"}, got)
	})

	t.Run("without suggestions", func(t *testing.T) {
		body, got := SplitSuggestions("제목: 퍼팅\n")
		assert.Equal(t, "제목: 퍼팅\n", body)
		assert.Nil(t, got)
	})
}

func TestSuggestionsOrKeywords(t *testing.T) {
	raw := "제목: x\n🔑 핵심키워드: 비거리, #드라이버"
	assert.Equal(t, []string{"a"}, SuggestionsOrKeywords(raw, []string{"a"}))
	assert.Equal(t, []string{"비거리", "드라이버"}, SuggestionsOrKeywords(raw, nil))
	assert.Nil(t, SuggestionsOrKeywords("본문", nil))
}

func TestImagePrompts(t *testing.T) {
	raw := "📸 이미지 프롬프트: a (표지용)\n[Card 1]\n📸 이미지 프롬프트: b\n📸 이미지 프롬프트:\n[Card 2]\n📸 이미지 프롬프트: a"
	assert.Equal(t, []string{"a", "b"}, ImagePrompts(raw))
}

func TestIntroNoise(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "✔️ 문제: 슬라이스", want: true},
		{line: "✅ 해결책", want: true},
		{line: "키워드 총 5회 사용", want: true},
		{line: "가장 중요한 영역입니다", want: true},
		{line: "- 문제 정의", want: true},
		{line: "오늘은 드라이버 이야기", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsIntroNoise(tt.line), tt.line)
	}
}
