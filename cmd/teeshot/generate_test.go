package main

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/teeshot/internal/catalog"
	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/studio"
	"github.com/alkime/teeshot/internal/workdir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	return cat
}

func TestGenerateInput(t *testing.T) {
	cat := testCatalog(t)
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("explicit flags", func(t *testing.T) {
		cmd := &GenerateCmd{Format: "blog", Category: "골프 레슨", Keyword: "드라이버", SectionCount: 4, TextLength: 1500}

		in, err := cmd.input(cat, rng)
		require.NoError(t, err)
		assert.Equal(t, content.Blog, in.Format)
		assert.Equal(t, "골프 레슨", in.Category)
		assert.Equal(t, "드라이버", in.Keyword)
		assert.Equal(t, 4, in.SectionCount)
		assert.Equal(t, 1500, in.TextLength)
	})

	t.Run("fills category and keyword", func(t *testing.T) {
		cmd := &GenerateCmd{Format: "card", CardCount: 6}

		in, err := cmd.input(cat, rng)
		require.NoError(t, err)
		assert.Equal(t, cat.For(content.Card)[0].Name, in.Category)
		assert.Contains(t, cat.Keywords(content.Card, in.Category), in.Keyword)
		require.NoError(t, in.Validate())
	})

	t.Run("free text keeps keyword empty", func(t *testing.T) {
		cmd := &GenerateCmd{Format: "card", Text: "겨울 라운드 준비물"}

		in, err := cmd.input(cat, rng)
		require.NoError(t, err)
		assert.Empty(t, in.Keyword)
	})

	t.Run("quick", func(t *testing.T) {
		cmd := &GenerateCmd{Format: "default", Quick: true}

		in, err := cmd.input(cat, rng)
		require.NoError(t, err)
		assert.Equal(t, content.Default, in.Format)
		assert.NotEqual(t, catalog.Custom, in.Category)
		assert.Equal(t, 30, in.VideoLength)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := (&GenerateCmd{Format: "poster"}).input(cat, rng)
		require.Error(t, err)
	})
}

func TestSourceFlagsRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.txt")
	require.NoError(t, os.WriteFile(path, []byte("📌 제목: 겨울 골프\n\n📖 서론\n추운 날씨에도"), 0o600))

	raw, format, err := SourceFlags{File: path, Format: "blog"}.read()
	require.NoError(t, err)
	assert.Equal(t, content.Blog, format)
	assert.Contains(t, raw, "겨울 골프")

	_, _, err = SourceFlags{File: filepath.Join(t.TempDir(), "missing.txt")}.read()
	require.Error(t, err)

	_, _, err = SourceFlags{File: path, Format: "poster"}.read()
	require.Error(t, err)
}

func TestWriteRowToWorkdir(t *testing.T) {
	t.Setenv(workdir.EnvRoot, t.TempDir())

	st := newImportStudio(t)
	sess, err := st.Import(content.Input{Format: content.Card, Category: "골프 용품"},
		"1. 겨울 골프 준비\n\n2. 보온 장갑\n손을 따뜻하게")
	require.NoError(t, err)

	path, err := writeRow(sess, "")
	require.NoError(t, err)
	assert.Equal(t, "row.tsv", filepath.Base(path))

	row, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(row), "골프 용품")

	text, err := workdir.FilePath(sess.ID, "content.txt")
	require.NoError(t, err)
	assert.FileExists(t, text)
}

func newImportStudio(t *testing.T) *studio.Studio {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(0, logger)
	return studio.New(studio.Options{Sessions: sessions, Logger: logger})
}
