package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/alkime/teeshot/internal/catalog"
	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/editor"
	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/studio"
	"github.com/alkime/teeshot/internal/tui"
	"github.com/alkime/teeshot/internal/tui/preview"
	tea "github.com/charmbracelet/bubbletea"
)

// GenerateCmd generates content and previews it.
type GenerateCmd struct {
	Format       string `flag:"" short:"f" default:"card" enum:"card,blog,default,banner" help:"Content format"`
	Category     string `flag:"" short:"c" help:"Category"`
	Keyword      string `flag:"" short:"k" help:"Keyword (random from the category when omitted)"`
	Text         string `flag:"" short:"t" help:"Free text the content should build on"`
	ReferenceURL string `flag:"" name:"reference-url" help:"Web page to use as reference material"`
	CardCount    int    `flag:"" default:"6" help:"Number of cards"`
	TextLength   int    `flag:"" default:"1000" help:"Blog text length"`
	SectionCount int    `flag:"" default:"5" help:"Number of blog sections"`
	VideoLength  int    `flag:"" default:"30" help:"Video length in seconds"`
	Tone         string `flag:"" help:"Tone"`

	Headline    string `flag:"" help:"Banner headline"`
	Subheadline string `flag:"" help:"Banner subheadline"`
	AspectRatio string `flag:"" name:"aspect-ratio" help:"Banner aspect ratio"`

	Quick  bool   `flag:"" help:"Pick category, keyword and options at random"`
	NoTUI  bool   `flag:"" name:"no-tui" help:"Print the result instead of opening the preview"`
	Images bool   `flag:"" help:"Generate every image after the text (with --no-tui)"`
	Out    string `flag:"" help:"Export file (default: the session's working directory)"`
}

// input builds the generation request from the flags.
func (c *GenerateCmd) input(cat *catalog.Catalog, rng *rand.Rand) (content.Input, error) {
	format, err := content.ParseFormat(c.Format)
	if err != nil {
		return content.Input{}, err
	}

	if c.Quick {
		return cat.Quick(rng, format), nil
	}

	in := content.Input{
		Format:       format,
		Category:     c.Category,
		Keyword:      c.Keyword,
		UserText:     c.Text,
		ReferenceURL: c.ReferenceURL,
		CardCount:    c.CardCount,
		TextLength:   c.TextLength,
		SectionCount: c.SectionCount,
		VideoLength:  c.VideoLength,
		Tone:         c.Tone,
		Headline:     c.Headline,
		Subheadline:  c.Subheadline,
		AspectRatio:  c.AspectRatio,
	}
	if in.Category == "" {
		if cats := cat.For(format); len(cats) > 0 {
			in.Category = cats[0].Name
		}
	}
	if in.Keyword == "" && in.UserText == "" {
		in.Keyword = cat.RandomKeyword(rng, format, in.Category)
	}

	return in, nil
}

// Run executes the generate command.
func (c *GenerateCmd) Run(log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	//nolint:gosec // Keyword picks are not security sensitive
	in, err := c.input(cat, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	st, err := loadStudio(ctx, log)
	if err != nil {
		return err
	}

	if c.NoTUI {
		return c.runPlain(ctx, st, in)
	}

	run := func(ctx context.Context) (*session.Session, error) {
		return st.Generate(ctx, in)
	}
	p := tea.NewProgram(
		tui.New(ctx, cancel, run, subtitle(in), c.actions(st)),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func (c *GenerateCmd) runPlain(ctx context.Context, st *studio.Studio, in content.Input) error {
	sess, err := st.Generate(ctx, in)
	if err != nil {
		return errors.New(genai.UserMessage(err))
	}

	if c.Images {
		if err := st.GenerateAllImages(ctx, sess); err != nil {
			return err
		}
	}

	fmt.Println(preview.Text(sess.Descriptors(), textWidth))

	if c.Out != "" {
		path, err := writeRow(sess, c.Out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "row written to %s\n", path)
	}

	return nil
}

func (c *GenerateCmd) actions(st *studio.Studio) preview.Actions {
	return previewActions(st, c.Out)
}

// PreviewCmd opens the preview for text that was generated earlier.
type PreviewCmd struct {
	SourceFlags

	Category string `flag:"" short:"c" help:"Category written to the export row"`
	Edit     bool   `flag:"" short:"e" help:"Open the file in $EDITOR before previewing"`
	Out      string `flag:"" help:"Export file (default: the session's working directory)"`
}

// Run executes the preview command.
func (c *PreviewCmd) Run(log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.Edit {
		if c.File == "" || c.File == "-" {
			return errors.New("--edit needs a file")
		}
		if err := editor.Open(c.File, log); err != nil {
			return err
		}
	}

	raw, format, err := c.read()
	if err != nil {
		return err
	}

	st, err := loadStudio(ctx, log)
	if err != nil {
		return err
	}

	sess, err := st.Import(content.Input{
		Format:   format,
		Category: c.Category,
		Keyword:  c.Keyword,
	}, raw)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewPreview(ctx, cancel, sess, previewActions(st, c.Out)),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func previewActions(st *studio.Studio, out string) preview.Actions {
	return preview.Actions{
		GenerateImages: st.GenerateAllImages,
		Export: func(sess *session.Session) (string, error) {
			return writeRow(sess, out)
		},
	}
}

func subtitle(in content.Input) string {
	if in.Keyword == "" {
		return fmt.Sprintf("%s · %s", in.Format, in.Category)
	}

	return fmt.Sprintf("%s · %s · %s", in.Format, in.Category, in.Keyword)
}
