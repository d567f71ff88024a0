package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/melih-ucgun/yurt/internal/core"
)

// PtermUI is an implementation of core.UI using pterm.
type PtermUI struct {
	writer io.Writer
}

// NewPtermUI creates a new PtermUI instance.
func NewPtermUI() *PtermUI {
	return &PtermUI{
		writer: os.Stdout,
	}
}

// Ensure PtermUI implements core.UI
var _ core.UI = (*PtermUI)(nil)

func (p *PtermUI) Section(title string) {
	pterm.DefaultSection.WithWriter(p.writer).Println(title)
}

func (p *PtermUI) Title(title string) {
	pterm.DefaultHeader.WithFullWidth().WithWriter(p.writer).Println(title)
}

func (p *PtermUI) Success(msg string) {
	pterm.Success.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Info(msg string) {
	pterm.Info.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Warning(msg string) {
	pterm.Warning.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Error(msg string) {
	pterm.Error.WithWriter(p.writer).Println(msg)
}

// Table renders rows with the first one as header.
func (p *PtermUI) Table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(p.writer).WithData(pterm.TableData(rows)).Render(); err != nil {
		// Fall back to plain columns.
		for _, row := range rows {
			fmt.Fprintln(p.writer, strings.Join(row, "\t"))
		}
	}
}

// Diff colors "+ " and "- " lines of a rendered diff.
func (p *PtermUI) Diff(diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			fmt.Fprintln(p.writer, pterm.FgGreen.Sprint(line))
		case strings.HasPrefix(line, "- "):
			fmt.Fprintln(p.writer, pterm.FgRed.Sprint(line))
		default:
			fmt.Fprintln(p.writer, pterm.FgGray.Sprint(line))
		}
	}
}

func (p *PtermUI) Println(args ...interface{}) {
	fmt.Fprintln(p.writer, args...)
}

func (p *PtermUI) WithWriter(w io.Writer) core.UI {
	return &PtermUI{
		writer: w,
	}
}
