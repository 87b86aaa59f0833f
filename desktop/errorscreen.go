package desktop

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	errorCols = 51
	errorRows = 19
)

// ShowError replaces the desktop with a single "Error" window listing lines centred
// Blocks until a key or mouse button is pressed, or ctx ends
func (d *Desktop) ShowError(ctx context.Context, lines ...string) {
	if d.closed {
		return
	}
	for _, w := range d.Windows() {
		w.Close()
	}

	w := newWindow(d, "Error", errorCols, errorRows)
	sw, sh := d.screen.Size()
	fw, fh := w.frameSize()
	w.x, w.y = (sw-fw)/2, (sh-fh)/2
	d.clampWindow(w)

	if len(lines) > errorRows {
		lines = lines[:errorRows]
	}
	top := (errorRows - len(lines)) / 2
	for i, line := range lines {
		line = runewidth.Truncate(line, errorCols, "…")
		col := (errorCols - runewidth.StringWidth(line)) / 2
		for _, r := range line {
			w.SetCharacter(col, top+i, r)
			col += runewidth.RuneWidth(r)
		}
	}

	for {
		d.screen.Clear()
		w.draw(d.screen, true)
		d.screen.Show()

		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				return
			case *tcell.EventMouse:
				if ev.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) != 0 {
					return
				}
			case *tcell.EventResize:
				d.screen.Sync()
				sw, sh = d.screen.Size()
				w.x, w.y = (sw-fw)/2, (sh-fh)/2
				d.clampWindow(w)
			}
		}
	}
}
