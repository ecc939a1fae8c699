package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridtactics/internal/menu"
)

// Translate maps a terminal event to a menu event. Mouse clicks fire on
// button press only; number keys pick sidebar options, Escape cancels and
// R restarts.
func (r *Renderer) Translate(ev tcell.Event, opts []menu.Option) (menu.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		pressed := down && !r.mouseDown
		r.mouseDown = down
		if !pressed {
			return nil, false
		}
		x, y := ev.Position()
		if p, ok := r.BoardAt(x, y); ok {
			return menu.TileClicked{Pos: p}, true
		}
		if i, ok := r.OptionAt(x, y); ok && i < len(opts) {
			return opts[i].Event, true
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return menu.CancelPressed{}, true
		case tcell.KeyRune:
			switch ch := ev.Rune(); {
			case ch >= '1' && ch <= '9':
				if i := int(ch - '1'); i < len(opts) {
					return opts[i].Event, true
				}
			case ch == 'r' || ch == 'R':
				return menu.RestartPressed{}, true
			}
		}
	}
	return nil, false
}
