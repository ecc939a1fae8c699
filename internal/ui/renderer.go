package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridtactics/internal/anim"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/gamedata"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/menu"
	"github.com/samdwyer/gridtactics/internal/turn"
	"github.com/samdwyer/gridtactics/internal/world"
)

// cellWidth is the number of terminal columns per board square.
const cellWidth = 2

// View is everything drawn in one frame.
type View struct {
	World     *world.World
	Team      int
	HumanTeam int
	Selected  *entity.Entity
	Message   string
	Options   []menu.Option
	Preview   []grid.Position
	Effects   []anim.Effect
}

// Renderer draws the board and sidebar. It also acts as the scheduler's
// presenter, keeping the highlight set and focus between frames.
type Renderer struct {
	screen  *Screen
	classes *gamedata.ClassRegistry

	highlights map[grid.Position]bool
	focus      *entity.Entity
	outcome    turn.Outcome
	alert      string

	boardW, boardH int
	sidebarX       int
	optionRows     map[int]int // screen row -> option index
	mouseDown      bool
}

// NewRenderer creates a new renderer for the given screen. classes supplies
// character colors and may be nil.
func NewRenderer(screen *Screen, classes *gamedata.ClassRegistry) *Renderer {
	return &Renderer{
		screen:     screen,
		classes:    classes,
		highlights: make(map[grid.Position]bool),
		optionRows: make(map[int]int),
	}
}

// ClearHighlights removes every highlighted square.
func (r *Renderer) ClearHighlights() { clear(r.highlights) }

// Highlight marks p.
func (r *Renderer) Highlight(p grid.Position) { r.highlights[p] = true }

// Focus marks e as the character the player should look at.
func (r *Renderer) Focus(e *entity.Entity) { r.focus = e }

// ShowGameOver displays the outcome banner.
func (r *Renderer) ShowGameOver(o turn.Outcome) { r.outcome = o }

// Alert shows a message that stays until Reset.
func (r *Renderer) Alert(message string) { r.alert = message }

// Reset forgets all presenter state, for a new game.
func (r *Renderer) Reset() {
	r.ClearHighlights()
	r.focus = nil
	r.outcome = turn.OutcomeNone
	r.alert = ""
}

// Highlighted reports whether p is highlighted.
func (r *Renderer) Highlighted(p grid.Position) bool { return r.highlights[p] }

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w := v.World
	r.boardW, r.boardH = w.Width, w.Height
	r.sidebarX = w.Width*cellWidth + 2

	preview := make(map[grid.Position]bool, len(v.Preview))
	for _, p := range v.Preview {
		preview[p] = true
	}

	// Draw tiles
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			p := grid.Pos(x, y)
			tile := w.GetTile(x, y)
			style := r.getTileStyle(tile)
			switch {
			case preview[p]:
				style = style.Background(tcell.ColorDarkGreen)
			case r.highlights[p]:
				style = style.Background(tcell.ColorNavy)
			}
			r.drawCell(p, tile.Rune(), style)
		}
	}

	// Draw entities on top, characters last so they cover open doors
	for _, e := range w.Entities {
		if !e.IsCharacter() {
			r.drawEntity(e, preview[e.Pos])
		}
	}
	for _, e := range w.Entities {
		if e.IsCharacter() {
			r.drawEntity(e, preview[e.Pos])
		}
	}

	for _, fx := range v.Effects {
		r.drawEffect(fx)
	}

	r.drawSidebar(v)
	r.drawMessage(v)
	r.screen.Show()
}

func (r *Renderer) drawCell(p grid.Position, ch rune, style tcell.Style) {
	r.screen.SetContent(p.X*cellWidth, p.Y, ch, style)
	r.screen.SetContent(p.X*cellWidth+1, p.Y, ' ', style)
}

func (r *Renderer) drawEntity(e *entity.Entity, previewed bool) {
	style := tcell.StyleDefault.Foreground(r.entityColor(e))
	if e == r.focus {
		style = style.Bold(true).Underline(true)
	}
	switch {
	case previewed:
		style = style.Background(tcell.ColorDarkGreen)
	case r.highlights[e.Pos]:
		style = style.Background(tcell.ColorNavy)
	}
	r.drawCell(e.Pos, e.Glyph(), style)
}

// drawEffect overlays one in-flight animation effect.
func (r *Renderer) drawEffect(fx anim.Effect) {
	switch fx.Kind {
	case anim.EffectStep:
		r.drawCell(fx.From, '·', tcell.StyleDefault.Foreground(tcell.ColorGray))
	case anim.EffectLunge:
		r.drawCell(fx.To, '×', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	case anim.EffectProjectile:
		r.drawCell(fx.To, '*', tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true))
	case anim.EffectBlast:
		for _, n := range grid.Neighbours(fx.To) {
			if n.X >= 0 && n.Y >= 0 && n.X < r.boardW && n.Y < r.boardH {
				r.drawCell(n, '*', tcell.StyleDefault.Foreground(tcell.ColorRed))
			}
		}
	case anim.EffectFlash:
		if fx.Entity != nil {
			r.drawCell(fx.To, fx.Entity.Glyph(), tcell.StyleDefault.Reverse(true))
		}
	case anim.EffectDamageNumber:
		y := fx.To.Y - 1
		if y < 0 {
			y = fx.To.Y + 1
		}
		r.screen.DrawText(fx.To.X*cellWidth, y, fmt.Sprintf("-%d", fx.Amount),
			tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	case anim.EffectFade:
		if fx.Entity != nil {
			r.drawCell(fx.To, fx.Entity.Glyph(), tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		}
	}
}

func (r *Renderer) drawSidebar(v View) {
	x, y := r.sidebarX, 0
	header := fmt.Sprintf("Team %d", v.Team+1)
	if v.Team == v.HumanTeam {
		header += " (you)"
	}
	r.screen.DrawText(x, y, header, tcell.StyleDefault.Bold(true))
	y += 2

	for _, c := range v.World.Characters() {
		style := tcell.StyleDefault.Foreground(r.entityColor(c))
		if c == v.Selected {
			style = style.Reverse(true)
		}
		line := fmt.Sprintf("%c %-8s HP %2d/%-2d AP %d", c.Glyph(), c.Name,
			c.Character.Health, c.Character.MaxHealth, c.Character.ActionPoints)
		r.screen.DrawText(x, y, line, style)
		y++
	}
	y++

	clear(r.optionRows)
	for i, o := range v.Options {
		label := fmt.Sprintf("[%d] %s", i+1, o.Label)
		r.screen.DrawText(x, y, label, tcell.StyleDefault.Foreground(tcell.ColorAqua))
		r.optionRows[y] = i
		y++
	}
}

func (r *Renderer) drawMessage(v View) {
	y := r.boardH + 1
	msg := v.Message
	if r.outcome != turn.OutcomeNone {
		msg = r.outcome.Message() + " Press R to play again."
	}
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if r.alert != "" {
		r.screen.DrawText(0, y+1, r.alert, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) entityColor(e *entity.Entity) tcell.Color {
	switch e.Kind {
	case entity.KindCharacter:
		if r.classes != nil {
			if def := r.classes.GetByID(e.Character.Class); def != nil {
				return def.TCellColor()
			}
		}
		if e.Character.Team == 0 {
			return tcell.ColorYellow
		}
		return tcell.ColorRed
	case entity.KindDoor:
		return tcell.ColorSaddleBrown
	case entity.KindLever:
		return tcell.ColorSilver
	default:
		return tcell.ColorOlive
	}
}

// BoardAt maps a screen cell to the board square drawn there.
func (r *Renderer) BoardAt(sx, sy int) (grid.Position, bool) {
	p := grid.Pos(sx/cellWidth, sy)
	if sx < 0 || sy < 0 || p.X >= r.boardW || p.Y >= r.boardH {
		return p, false
	}
	return p, true
}

// OptionAt returns the index of the sidebar option drawn at a screen cell.
func (r *Renderer) OptionAt(sx, sy int) (int, bool) {
	if sx < r.sidebarX {
		return 0, false
	}
	i, ok := r.optionRows[sy]
	return i, ok
}
