package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/menuscan/backend/internal/domain"
	"github.com/schollz/progressbar/v3"
)

// progressBar renders extraction checkpoints as a 0-100 bar
type progressBar struct {
	bar *progressbar.ProgressBar
}

func newProgressBar(w io.Writer, description string) *progressBar {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
	return &progressBar{bar: bar}
}

// Set moves the bar to percent and shows the stage name
func (p *progressBar) Set(percent int, stage string) {
	p.bar.Describe(stage)
	_ = p.bar.Set(percent)
}

// Finish completes the bar on success and leaves it where it stopped otherwise
func (p *progressBar) Finish(ok bool) {
	if ok {
		_ = p.bar.Finish()
		return
	}
	_ = p.bar.Exit()
}

func printOutcome(w io.Writer, result *domain.ExtractionResult, out string) {
	if result.Outcome == domain.OutcomeEmpty {
		color.New(color.FgYellow).Fprintln(w, "! no items detected")
		return
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(w, "✓ %d products in %d categories", result.ProductCount, len(result.Groups))
	fmt.Fprintf(w, " (strategy: %s)\n", result.Strategy)
	if out != "" {
		fmt.Fprintf(w, "  written to %s\n", out)
	}
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
	if domain.IsRetryable(err) {
		color.New(color.FgYellow).Fprintln(w, "  this looks temporary, try again")
	}
}
