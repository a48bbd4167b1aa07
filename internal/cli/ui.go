package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Numbers are ANSI 256 colours.
var (
	colorThread = lipgloss.Color("36")  // teal: headings, counters
	colorOK     = lipgloss.Color("35")  // green: success, running
	colorPause  = lipgloss.Color("220") // amber: paused
	colorTear   = lipgloss.Color("167") // soft red: errors, cutting
	colorShell  = lipgloss.Color("75")  // light blue: commands
	colorInk    = lipgloss.Color("255") // values
	colorFabric = lipgloss.Color("245") // the cloth itself, labels
	colorMuted  = lipgloss.Color("240")
	colorBarBg  = lipgloss.Color("236")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorThread)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	StyleValue  = lipgloss.NewStyle().Foreground(colorInk)
	StyleNumber = lipgloss.NewStyle().Foreground(colorThread)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorThread)
	styleCommand     = lipgloss.NewStyle().Foreground(colorShell)
	styleLabel       = lipgloss.NewStyle().Foreground(colorFabric).Width(12)
	styleHeader      = lipgloss.NewStyle().Foreground(colorFabric).Bold(true)

	// interactive view
	styleCloth   = lipgloss.NewStyle().Foreground(colorFabric)
	styleBar     = lipgloss.NewStyle().Foreground(colorInk).Background(colorBarBg).Padding(0, 1)
	stylePaused  = lipgloss.NewStyle().Bold(true).Foreground(colorPause)
	styleRunning = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	styleCutting = lipgloss.NewStyle().Bold(true).Foreground(colorTear)
)

type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorTear)}
	markNote = mark{"›", lipgloss.NewStyle().Foreground(colorFabric)}
)

// printer writes command status lines to w, normally cmd.OutOrStdout().
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) status(m mark, format string, args ...any) {
	fmt.Fprintln(p.w, m.style.Render(m.glyph)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.status(markOK, format, args...) }
func (p printer) failure(format string, args ...any) { p.status(markFail, format, args...) }
func (p printer) note(format string, args ...any)    { p.status(markNote, format, args...) }

// file lists one written output.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// runStats prints the counters of a finished simulation on one line.
func (p printer) runStats(frames, live, torn, severed int) {
	counts := []struct {
		n    int
		unit string
	}{{frames, "frames"}, {live, "live"}, {torn, "torn"}, {severed, "severed"}}

	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = StyleNumber.Render(strconv.Itoa(c.n)) + " " + StyleDim.Render(c.unit)
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// hint suggests a follow-up command.
func (p printer) hint(description, command string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}
