package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleTitle      = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleHeader     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRow        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCurrent    = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleCurrentRej = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack)
	styleInput      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	stylePending    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	title := fmt.Sprintf("%s: %d states, alphabet %s", v.name, v.dfa.NumStates(), v.dfa.Alphabet())
	v.drawString(1, 0, truncate(title, w-2), styleTitle)

	y := v.drawTable(1, 2, h-6)

	y++
	v.drawString(1, y, "Input: ", styleHeader)
	x := v.drawString(8, y, truncate(inputString(v.runner.Input()), w-10), styleInput)
	v.drawString(x, y, v.pending+"_", stylePending)

	v.drawStatusBar(w, h)
}

// columnWidths returns the display width of each table column.
func (v *Viewer) columnWidths() []int {
	widths := make([]int, len(v.header))
	for i, cell := range v.header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range v.rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// drawTable draws the transition table with the current state's row
// highlighted and returns the first free line.
func (v *Viewer) drawTable(x, y, maxRows int) int {
	widths := v.columnWidths()
	line := func(cells []string) string {
		var sb strings.Builder
		for i, cell := range cells {
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			if i < len(cells)-1 {
				sb.WriteString(" │ ")
			}
		}
		return sb.String()
	}

	v.drawString(x, y, line(v.header), styleHeader)
	y++
	total := 0
	for _, w := range widths {
		total += w + 3
	}
	v.drawString(x, y, strings.Repeat("─", total-3), styleBorder)
	y++

	current := v.runner.Current().String()
	for i, row := range v.rows {
		if i >= maxRows {
			v.drawString(x, y, fmt.Sprintf("... %d more", len(v.rows)-i), styleRow)
			return y + 1
		}
		style := styleRow
		if row[1] == current {
			style = styleCurrentRej
			if v.runner.IsAccepting() {
				style = styleCurrent
			}
		}
		v.drawString(x, y, line(row), style)
		y++
	}
	return y
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	v.drawString(1, y, v.runner.Status(), styleStatus)

	// Message
	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		if v.messageFlashStart > 0 && shouldInvert(time.Now().UnixMilli()-v.messageFlashStart) {
			style = style.Reverse(true)
		}
		v.drawString(w-runewidth.StringWidth(v.message)-2, y, v.message, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, "Type symbols  Backspace:Undo  Ctrl+R:Reset  Esc:Quit", styleHelp)
}

// shouldInvert gives the flash pattern for a message shown elapsed
// milliseconds ago: inverted during 125-250 and 375-500.
func shouldInvert(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

// drawString draws s at x, y and returns the column after it.
func (v *Viewer) drawString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func inputString(word []fa.Symbol) string {
	if len(word) == 0 {
		return ""
	}
	parts := make([]string, len(word))
	for i, s := range word {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxLen, "...")
}
