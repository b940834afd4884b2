// Package reference fetches a web page and reduces it to its readable text
// so it can be quoted in a generation request.
package reference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

const (
	// MaxTextLength caps extracted text, in runes.
	MaxTextLength = 15000
	// MinTextLength is the shortest extraction considered useful.
	MinTextLength = 50
	// previewLength caps the markup preview returned for thin pages.
	previewLength = 5000
	maxBodyBytes  = 5 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	accept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Fetcher downloads reference pages.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher returns a fetcher using client, or a client with a 15s timeout
// when nil.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Fetcher{client: client, logger: logger}
}

// Fetch downloads url and returns its main text. Pages with too little text
// yield a notice followed by a markup preview.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch reference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode reference: %w", err)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read reference: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse reference: %w", err)
	}

	text := Extract(doc)
	f.logger.Debug("Fetched reference", "url", url, "html_bytes", len(raw), "text_runes", utf8.RuneCountInString(text))

	if utf8.RuneCountInString(text) < MinTextLength {
		f.logger.Warn("Reference page has little text", "url", url)
		return thinPage(url, doc), nil
	}

	return text, nil
}

// Text is Fetch that never fails: errors become a notice the model can read.
func (f *Fetcher) Text(ctx context.Context, url string) string {
	text, err := f.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("Failed to fetch reference", "url", url, "error", err)
		return fmt.Sprintf("URL 내용을 가져오는 중 오류가 발생했습니다: %s\n\nURL: %s", err, url)
	}

	return text
}

// Extract returns the whitespace-collapsed text of the document's main
// content area: the first main, then article, then div whose class or id
// mentions "content", and the whole document otherwise.
func Extract(doc *html.Node) string {
	root := findFirst(doc, isElement(atom.Main))
	if root == nil {
		root = findFirst(doc, isElement(atom.Article))
	}
	if root == nil {
		root = findFirst(doc, isContentDiv)
	}
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	collectText(root, &sb)

	return truncate(strings.Join(strings.Fields(sb.String()), " "), MaxTextLength)
}

func thinPage(url string, doc *html.Node) string {
	stripNodes(doc)
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		buf.Reset()
	}

	return fmt.Sprintf("URL: %s\n\n페이지 내용이 제한적이거나 동적으로 로드되는 콘텐츠입니다. 다음은 페이지의 일부 내용입니다:\n\n%s",
		url, truncate(buf.String(), previewLength))
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func isContentDiv(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Div {
		return false
	}
	for _, attr := range n.Attr {
		if (attr.Key == "class" || attr.Key == "id") && strings.Contains(attr.Val, "content") {
			return true
		}
	}

	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}

	return nil
}

func skipped(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	default:
		return false
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	if skipped(n) {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if n.Type == html.ElementNode {
		sb.WriteByte(' ')
	}
}

func stripNodes(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if skipped(c) {
			n.RemoveChild(c)
		} else {
			stripNodes(c)
		}
		c = next
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}
