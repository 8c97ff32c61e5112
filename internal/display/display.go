// Package display provides the colored, progress-bar terminal output used
// by cmd during encrypt/decrypt runs.
package display

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	progressbar "github.com/schollz/progressbar/v3"
)

// Displayer reports status and chunk progress for a single encrypt or
// decrypt run.
type Displayer interface {
	ShowFile(path string, size int64)
	ShowProgress(totalChunks int)
	UpdateProgress(completed int, throughput float64)
	FinishProgress()
	ShowMessage(msg string)
	ShowWarning(msg string)
	ShowError(msg string)
}

// Display is the default terminal Displayer.
type Display struct {
	bar *progressbar.ProgressBar
}

var _ Displayer = (*Display)(nil)

// NewDisplay returns a Displayer that writes colored output to stdout.
func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) ShowFile(path string, size int64) {
	fmt.Printf("\n%s %s (%s)\n",
		magenta("Processing:"),
		success(filepath.Base(path)),
		label(humanize.IBytes(uint64(size))))
}

func (d *Display) ShowProgress(totalChunks int) {
	fmt.Println()
	d.bar = progressbar.NewOptions(totalChunks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][bold]Processing chunks...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (d *Display) UpdateProgress(completed int, throughput float64) {
	if d.bar == nil {
		return
	}
	if err := d.bar.Set(completed); err != nil {
		log.Printf("failed to update progress bar: %v", err)
	}
	if throughput > 0 {
		d.bar.Describe(fmt.Sprintf("[cyan][bold]Processing chunks...[reset] [%.2f MB/s]", throughput/1024/1024))
	}
}

func (d *Display) FinishProgress() {
	if d.bar == nil {
		return
	}
	if err := d.bar.Finish(); err != nil {
		log.Printf("failed to finish progress bar: %v", err)
	}
	fmt.Println()
}

var (
	magenta    = color.New(color.FgMagenta).SprintFunc()
	success    = color.New(color.FgGreen).SprintFunc()
	label      = color.New(color.FgCyan).SprintFunc()
	yellow     = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
)

func (d *Display) ShowMessage(msg string) {
	fmt.Printf("%s %s\n", success("\nInfo:"), msg)
}

func (d *Display) ShowWarning(msg string) {
	fmt.Printf("%s %s\n", yellow("Warning:"), msg)
}

func (d *Display) ShowError(msg string) {
	fmt.Println(errorColor(msg))
}

// Formatter renders byte sizes and durations for CLI output.
type Formatter struct{}

// FormatBytes renders n using binary (IEC) units.
func (Formatter) FormatBytes(n int64) string {
	return humanize.IBytes(uint64(n))
}

// FormatDuration renders d the way the teacher's CLI reports elapsed time:
// milliseconds under a second, a relative phrase otherwise.
func (Formatter) FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return humanize.RelTime(time.Now().Add(-d), time.Now(), "", "")
}
