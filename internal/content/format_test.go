package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		hint string
		want Format
	}{
		{name: "banner hint wins", raw: "[Card 1]", hint: HintBanner, want: Banner},
		{name: "blog hint wins", raw: "[Card 1]", hint: HintBlog, want: Blog},
		{name: "card marker", raw: "제목: x\n[Card 1]\n", hint: HintCard, want: Card},
		{name: "scene marker", raw: "[Scene 2]", want: Card},
		{name: "section title marker", raw: "[섹션 1 제목] 준비", want: Blog},
		{name: "intro marker", raw: "✍️ 인트로\n본문", want: Blog},
		{name: "title step marker", raw: "✅ 1. 제목", want: Blog},
		{name: "aspect ratio line", raw: "📐 비율: 1:1", want: Banner},
		{name: "design concept header", raw: "본문\n💭 디자인 컨셉", want: Banner},
		{name: "nothing", raw: "아무 표식 없음", want: Default},
		{name: "empty", raw: "", want: Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.raw, tt.hint))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)

		got, err = ParseFormat(f.Hint())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("podcast")
	assert.Error(t, err)
}
