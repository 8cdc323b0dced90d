// Package overlay draws a foreground block, such as the help modal, on top
// of an already rendered view.
package overlay

import (
	"math"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement positions the foreground. Horizontal and Vertical use the
// lipgloss positions, so Left/Top is 0, Center 0.5 and Right/Bottom 1.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Centered places the foreground in the middle of the screen.
var Centered = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

const reset = "\x1b[0m"

var escapes = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Compose returns background sized to width x height with foreground drawn
// over it. Background cells left of the foreground keep their styling; cells
// to the right are kept as plain text.
func Compose(background string, width, height int, foreground string, p Placement) string {
	bg := fit(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fw := 0
	for _, line := range fg {
		fw = max(fw, ansi.PrintableRuneWidth(line))
	}
	fw = min(fw, width)
	fh := min(len(fg), height)

	x := offset(width, fw, p.Horizontal, p.MarginX)
	y := offset(height, fh, p.Vertical, p.MarginY)

	for row := 0; row < fh; row++ {
		base := bg[y+row]
		left := truncate.String(base, uint(x))
		if strings.Contains(left, "\x1b") {
			left += reset
		}
		left = pad(left, x)
		mid := pad(truncate.String(fg[row], uint(fw)), fw)
		right := cut(escapes.ReplaceAllString(base, ""), x+fw, width)
		bg[y+row] = left + mid + right
	}
	return strings.Join(bg, "\n")
}

func fit(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(truncate.String(lines[i], uint(max(width, 0))), width)
	}
	return lines
}

func offset(total, size int, pos lipgloss.Position, margin int) int {
	free := total - size
	o := int(math.Round(float64(free) * float64(pos)))
	switch {
	case pos == lipgloss.Left:
		o += margin
	case pos == lipgloss.Right:
		o -= margin
	}
	return max(0, min(o, free))
}

func pad(s string, width int) string {
	if w := ansi.PrintableRuneWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// cut returns the plain text between columns start and end.
func cut(s string, start, end int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := ansi.PrintableRuneWidth(string(r))
		if col >= start && col+w <= end {
			b.WriteRune(r)
		}
		col += w
		if col >= end {
			break
		}
	}
	return pad(b.String(), end-start)
}
