package render_test

import (
	"strings"
	"testing"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardRaw = "제목: 겨울 라운드 팁\n[Card 1]\n💡 소제목: 보온\n추운 날씨엔 보온이 핵심\n📸 이미지 프롬프트: 겨울 골프 보온 장비\n[Card 2]\n📸 이미지 프롬프트: 겨울 골프 보온 장비\n#골프 #겨울"

func kinds(ds []render.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, string(d.Kind)+":"+string(d.Role))
	}
	return out
}

func imagesOf(ds []render.Descriptor) []render.Descriptor {
	var out []render.Descriptor
	for _, d := range ds {
		if d.Kind == render.KindImage {
			out = append(out, d)
		}
	}
	return out
}

func TestRender_Card(t *testing.T) {
	segs := content.Parse(cardRaw, content.Card)
	ds := render.Render(segs, render.Options{Format: content.Card})

	assert.Equal(t, []string{
		"heading:title",
		"heading:card", "heading:subtitle", "paragraph:card", "image:image",
		"heading:card", "image:image",
		"paragraph:hashtags",
	}, kinds(ds))
	assert.Equal(t, "#골프 #겨울", ds[len(ds)-1].Text)
}

func TestRender_ImageStates(t *testing.T) {
	segs := content.Parse(cardRaw, content.Card)
	prompt := "겨울 골프 보온 장비"

	tests := []struct {
		name    string
		status  images.Status
		actions []render.Action
	}{
		{"idle", images.Status{State: images.Idle}, []render.Action{render.ActionGenerate, render.ActionCopy}},
		{"pending", images.Status{State: images.Pending}, nil},
		{"ready", images.Status{State: images.Ready, LocalURL: "data:x"}, []render.Action{render.ActionDownload, render.ActionEdit}},
		{"failed", images.Status{State: images.Failed, Err: "quota"}, []render.Action{render.ActionRetry}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := render.Render(segs, render.Options{
				Format:   content.Card,
				Statuses: images.Statuses{prompt: tt.status},
			})
			slots := imagesOf(ds)
			require.Len(t, slots, 2)
			for _, s := range slots {
				assert.Equal(t, tt.status.State, s.State)
				assert.Equal(t, tt.actions, s.Actions)
			}
		})
	}

	t.Run("shared prompt renders the same asset", func(t *testing.T) {
		ds := render.Render(segs, render.Options{
			Format:   content.Card,
			Statuses: images.Statuses{prompt: {State: images.Ready, LocalURL: "data:same"}},
		})
		slots := imagesOf(ds)
		require.Len(t, slots, 2)
		assert.Equal(t, "data:same", slots[0].LocalURL)
		assert.Equal(t, slots[0].LocalURL, slots[1].LocalURL)
	})
}

func TestRender_Total(t *testing.T) {
	for _, in := range []string{"", "   \n\t", "그냥 문장", "```json\n{}\n```"} {
		for _, f := range content.AllFormats() {
			assert.NotPanics(t, func() {
				render.Render(content.Parse(in, f), render.Options{Format: f})
			})
		}
	}
	assert.Empty(t, render.Render(nil, render.Options{}))
}

const blogRaw = `✅ 1. 제목: 드라이버 비거리 늘리는 법
✍️ 인트로
비거리가 고민이라면 읽어보세요.
[목차]
1. 그립
📚 본문
[섹션 1 제목] 그립 – 기본
손 모양이 중요합니다.
📸 이미지 프롬프트: 골프 그립 클로즈업
🟧 핵심 요약
- 그립을 점검하세요
🔎 참고자료
골프다이제스트`

func TestRender_Blog(t *testing.T) {
	segs := content.Parse(blogRaw, content.Blog)
	cites := []content.Citation{{URI: "https://example.com", Title: "Example"}}

	t.Run("layout", func(t *testing.T) {
		ds := render.Render(segs, render.Options{Format: content.Blog, Keyword: "비거리", Citations: cites})

		assert.Equal(t, []string{
			"heading:title",
			"heading:label", "paragraph:intro",
			"heading:label", "heading:section", "paragraph:section", "image:image",
			"heading:label", "paragraph:summary",
			"heading:label", "paragraph:references", "citations:references",
		}, kinds(ds))
		assert.Equal(t, "본문 구성", ds[3].Text)
		assert.Equal(t, 1, ds[0].Level)
	})

	t.Run("keyword highlight in title", func(t *testing.T) {
		ds := render.Render(segs, render.Options{Format: content.Blog, Keyword: "비거리"})
		assert.Equal(t, []render.Span{
			{Text: "드라이버 "},
			{Text: "비거리", Highlight: true},
			{Text: " 늘리는 법"},
		}, ds[0].Spans)
	})

	t.Run("citations appended once when no references segment", func(t *testing.T) {
		noRefs := strings.Split(blogRaw, "\n🔎")[0]
		ds := render.Render(content.Parse(noRefs, content.Blog), render.Options{Format: content.Blog, Citations: cites})
		last := ds[len(ds)-1]
		assert.Equal(t, render.KindCitations, last.Kind)
		assert.Equal(t, "참고자료", ds[len(ds)-2].Text)
	})
}

func TestRender_BlogAsides(t *testing.T) {
	raw := "✍️ 인트로\n첫 줄\n🎬 현장 스케치\n둘째 줄\n[섹션 1 제목] 장비\n장갑\n📸 대표 이미지\n공\n✅ 정리"
	ds := render.Render(content.Parse(raw, content.Blog), render.Options{Format: content.Blog})

	assert.Equal(t, []string{
		"heading:label", "paragraph:intro", "heading:scene", "paragraph:intro",
		"heading:label", "heading:section", "paragraph:section", "heading:scene", "paragraph:section",
		"heading:callout",
	}, kinds(ds))
	assert.Equal(t, "🎬 현장 스케치", ds[2].Text)
	assert.Equal(t, "대표 이미지", ds[7].Text)
	assert.Equal(t, "✅ 정리", ds[9].Text)
	assert.Equal(t, 4, ds[9].Level)
}

func TestRender_NonBlogCitations(t *testing.T) {
	ds := render.Render(content.Parse(cardRaw, content.Card), render.Options{
		Format:    content.Card,
		Citations: []content.Citation{{URI: "https://a.example"}},
	})
	require.GreaterOrEqual(t, len(ds), 2)
	assert.Equal(t, "AI가 참고한 자료", ds[len(ds)-2].Text)
	assert.Equal(t, render.KindCitations, ds[len(ds)-1].Kind)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, []render.Span{{Text: "Golf "}, {Text: "TIP", Highlight: true}, {Text: " and "}, {Text: "tip", Highlight: true}},
		render.Highlight("Golf TIP and tip", "tip"))
	assert.Equal(t, []render.Span{{Text: "plain"}}, render.Highlight("plain", ""))
	assert.Equal(t, []render.Span{{Text: "a.b", Highlight: true}}, render.Highlight("a.b", "a.b"))
}

func TestHTML(t *testing.T) {
	ds := []render.Descriptor{
		{Kind: render.KindHeading, Role: render.RoleTitle, Level: 2, Spans: []render.Span{{Text: "<b>"}, {Text: "골프", Highlight: true}}},
		{Kind: render.KindParagraph, Role: render.RoleText, Text: "**굵게** 강조"},
		{Kind: render.KindImage, Role: render.RoleImage, Prompt: `a "fox"`, State: images.Ready, LocalURL: "data:x", Actions: []render.Action{render.ActionDownload}},
		{Kind: render.KindCitations, Citations: []content.Citation{{URI: "https://e.com?a=1&b=2"}}},
	}

	out, err := render.HTML(ds)
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 class="title">&lt;b&gt;<span class="highlight">골프</span></h2>`)
	assert.Contains(t, out, "<strong>굵게</strong>")
	assert.Contains(t, out, `data-prompt="a &#34;fox&#34;"`)
	assert.Contains(t, out, `data-actions="download"`)
	assert.Contains(t, out, `href="https://e.com?a=1&amp;b=2"`)
}
