package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// ProgressBar renders download progress. On a terminal the bar is redrawn in
// place; otherwise a single summary line is written when the download ends.
type ProgressBar struct {
	out         io.Writer
	bar         progress.Model
	interactive bool

	name  string
	total int64
	done  int64
}

var _ immich.ProgressReporter = (*ProgressBar)(nil)

// NewProgressBar creates a progress bar on w. Redrawing is enabled only when
// w is a terminal.
func NewProgressBar(w io.Writer) *ProgressBar {
	interactive := false
	if f, ok := w.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return newProgressBar(w, interactive)
}

func newProgressBar(w io.Writer, interactive bool) *ProgressBar {
	return &ProgressBar{
		out:         w,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(constants.ProgressBarWidth)),
		interactive: interactive,
	}
}

func (p *ProgressBar) Start(name string, total int64) {
	p.name = name
	p.total = total
	p.done = 0

	if p.interactive {
		p.draw()
	}
}

func (p *ProgressBar) Advance(n int64) {
	p.done += n

	if p.interactive {
		p.draw()
	}
}

func (p *ProgressBar) Finish() {
	if p.interactive {
		p.draw()
		_, _ = fmt.Fprintln(p.out)

		return
	}

	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.name, humanize.Bytes(uint64(p.done)))
}

func (p *ProgressBar) draw() {
	label := labelStyle.Render(p.name)

	if p.total <= 0 {
		_, _ = fmt.Fprintf(p.out, "\r%s %s", label, humanize.Bytes(uint64(p.done)))

		return
	}

	percent := float64(p.done) / float64(p.total)
	if percent > 1 {
		percent = 1
	}

	_, _ = fmt.Fprintf(p.out, "\r%s %s %s / %s", label, p.bar.ViewAs(percent),
		humanize.Bytes(uint64(p.done)), humanize.Bytes(uint64(p.total)))
}
