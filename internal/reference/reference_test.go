package reference_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alkime/teeshot/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const longText = "겨울철 라운드에서는 공의 반발력이 떨어지므로 한 클럽 길게 잡는 것이 좋습니다. 보온에도 신경 쓰세요."

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "main wins over article",
			page: `<body><nav>메뉴</nav><main><p>본문  내용</p><script>var x=1;</script></main><article>기사</article></body>`,
			want: "본문 내용",
		},
		{
			name: "article",
			page: `<body><header>헤더</header><article><h1>제목</h1><p>문단</p></article></body>`,
			want: "제목 문단",
		},
		{
			name: "content div by class",
			page: `<body><div class="side">옆</div><div class="news_content"><p>뉴스</p><style>p{}</style></div></body>`,
			want: "뉴스",
		},
		{
			name: "content div by id",
			page: `<body><div id="content-area">아이디</div></body>`,
			want: "아이디",
		},
		{
			name: "whole page",
			page: `<html><head><title>타이틀</title></head><body><p>전체<!-- 주석 --></p><noscript>없음</noscript></body></html>`,
			want: "타이틀 전체",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reference.Extract(parse(t, tt.page)))
		})
	}

	t.Run("caps length", func(t *testing.T) {
		page := "<main>" + strings.Repeat("가", reference.MaxTextLength+100) + "</main>"
		got := reference.Extract(parse(t, page))
		assert.Equal(t, reference.MaxTextLength, utf8.RuneCountInString(got))
	})
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, "<html><body><article><p>%s</p></article></body></html>", longText)
		case "/thin":
			fmt.Fprint(w, "<html><body><script>render()</script><div id=app>짧음</div></body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := reference.NewFetcher(srv.Client(), quiet())

	t.Run("main text", func(t *testing.T) {
		got, err := f.Fetch(context.Background(), srv.URL+"/article")
		require.NoError(t, err)
		assert.Equal(t, longText, got)
	})

	t.Run("thin page preview", func(t *testing.T) {
		got, err := f.Fetch(context.Background(), srv.URL+"/thin")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "URL: "+srv.URL+"/thin\n\n페이지 내용이 제한적"))
		assert.Contains(t, got, "짧음")
		assert.NotContains(t, got, "render()")
	})

	t.Run("http error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		require.ErrorContains(t, err, "status: 404")
	})

	t.Run("text never fails", func(t *testing.T) {
		got := f.Text(context.Background(), srv.URL+"/missing")
		assert.True(t, strings.HasPrefix(got, "URL 내용을 가져오는 중 오류가 발생했습니다"))
		assert.Contains(t, got, srv.URL+"/missing")
	})
}
