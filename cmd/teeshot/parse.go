package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/internal/sheet"
	"github.com/alkime/teeshot/internal/tui/preview"
)

const textWidth = 80

// ParseCmd segments generated text and prints the display sections.
type ParseCmd struct {
	SourceFlags

	Output string `flag:"" short:"o" default:"text" enum:"text,json,html" help:"Output: text, json or html"`
}

// Run executes the parse command.
func (c *ParseCmd) Run() error {
	raw, format, err := c.read()
	if err != nil {
		return err
	}

	_, suggestions := content.SplitSuggestions(raw)
	ds := render.Render(content.Parse(raw, format), render.Options{
		Format:  format,
		Keyword: c.Keyword,
	})

	switch c.Output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(map[string]any{
			"format":      format,
			"sections":    ds,
			"suggestions": content.SuggestionsOrKeywords(raw, suggestions),
		})
	case "html":
		out, err := render.HTML(ds)
		if err != nil {
			return fmt.Errorf("failed to render html: %w", err)
		}
		fmt.Println(out)
	default:
		fmt.Println(preview.Text(ds, textWidth))
	}

	return nil
}

// ExportCmd prints or writes the spreadsheet row for generated text.
type ExportCmd struct {
	SourceFlags

	Category string `flag:"" short:"c" help:"Category written to the row"`
	Out      string `flag:"" help:"Write the row to this file instead of stdout"`
}

// Run executes the export command.
func (c *ExportCmd) Run() error {
	raw, format, err := c.read()
	if err != nil {
		return err
	}

	row := sheet.Build(sheet.Input{
		Raw:      raw,
		Format:   format,
		Category: c.Category,
	})
	if row == nil {
		return errors.New("nothing to export")
	}

	tsv := sheet.EncodeTSV(row)
	if c.Out == "" {
		fmt.Println(tsv)
		return nil
	}

	if err := writeFile(c.Out, tsv); err != nil {
		return err
	}
	fmt.Printf("row written to %s\n", c.Out)

	return nil
}
