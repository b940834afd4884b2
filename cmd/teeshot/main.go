package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alkime/teeshot/internal/logger"
)

// CLI defines the teeshot command structure.
type CLI struct {
	Verbose bool `short:"v" help:"Show debug logs"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate content and preview it in the terminal"`
	Parse    ParseCmd    `cmd:"" help:"Parse generated text into display sections"`
	Export   ExportCmd   `cmd:"" help:"Build the spreadsheet row for generated text"`
	Preview  PreviewCmd  `cmd:"" help:"Preview generated text from a file in the terminal"`
	Serve    ServeCmd    `cmd:"" help:"Run the web server"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

func main() {
	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("teeshot"),
		kong.Description("Golf social media content generator"),
		kong.UsageOnError(),
	)

	// Set up text-based logger for CLI output
	log := logger.NewCLI(os.Stderr, cli.Verbose)
	slog.SetDefault(log)
	ctx.Bind(log)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
