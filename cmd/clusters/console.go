package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/clusters/btree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// console prints results and group structures to a fixed-width terminal.
type console struct {
	w       io.Writer
	width   int // line width in ‘en’s
	context *uax11.Context
	levels  []*color.Color
	ok      *color.Color
}

var setupGraphemes sync.Once

func newConsole(w io.Writer) *console {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return &console{
		w:       w,
		width:   terminalWidth(),
		context: uax11.ContextFromEnvironment(),
		levels: []*color.Color{
			color.New(color.FgBlue),
			color.New(color.FgGreen),
			color.New(color.FgMagenta),
			color.New(color.FgRed),
		},
		ok: color.New(color.FgGreen, color.Bold),
	}
}

// terminalWidth checks wether stdout is a terminal, and if so derives the
// line width from the terminal's width.
func terminalWidth() int {
	if !term.IsTerminal(1) {
		return 80
	}
	w, _, err := term.GetSize(1)
	switch {
	case err != nil:
		return 80
	case w > 30:
		return w - 2
	case w > 10:
		return w
	}
	return 10
}

func (con *console) pass(msg string) {
	con.ok.Fprint(con.w, "PASS ")
	fmt.Fprintln(con.w, msg)
}

func (con *console) levelColor(level int) *color.Color {
	if level >= len(con.levels) {
		return con.levels[len(con.levels)-1]
	}
	return con.levels[level]
}

// clip shortens s to fit into width display columns.
func (con *console) clip(s string, width int) string {
	gstr := grapheme.StringFromString(s)
	if uax11.StringWidth(gstr, con.context) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		gw := uax11.StringWidth(grapheme.StringFromString(g), con.context)
		if used+gw > width-1 {
			break
		}
		b.WriteString(g)
		used += gw
	}
	b.WriteString("…")
	return b.String()
}

// printShape outputs one line per group, indented by depth.
func printShape[E any](con *console, height int, walk func(fn func(btree.GroupInfo, []E) bool)) {
	walk(func(info btree.GroupInfo, items []E) bool {
		depth := height - 1 - info.Level
		indent := strings.Repeat("  ", depth)
		head := fmt.Sprintf("%sL%d %d/%d #%d", indent, info.Level, info.Children, info.Capacity, info.Items)
		con.levelColor(info.Level).Fprint(con.w, head)
		if info.Level == 0 {
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = fmt.Sprintf("%v", item)
			}
			room := con.width - len(head) - 1
			if room > 1 {
				fmt.Fprint(con.w, " "+con.clip(strings.Join(parts, " "), room))
			}
		}
		fmt.Fprintln(con.w)
		return true
	})
}
