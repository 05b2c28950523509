package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starfall/game"
)

var (
	hudStyle    = tcell.StyleDefault.Reverse(true)
	bulletStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bombStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	starStyle   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	pickupStyle = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	shieldStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func (f *frontend) draw() {
	f.screen.Clear()
	cols, rows := f.screen.Size()
	session := f.world.Session()

	switch session.Mode {
	case game.ModeTitle:
		f.drawTitle(cols, rows)
	case game.ModeRunning:
		f.drawPlayfield(cols, rows, session)
		f.drawHUD(cols)
	case game.ModeGameOver:
		f.drawPlayfield(cols, rows, session)
		f.drawHUD(cols)
		hud := f.world.HUD()
		f.centered(rows/2-1, "GAME OVER", textStyle.Bold(true))
		f.centered(rows/2, hud.Final, shieldStyle)
		f.centered(rows/2+2, "Enter or r to continue, q to quit", textStyle)
	}

	f.screen.Show()
}

func (f *frontend) put(x, y int, r rune, style tcell.Style) {
	f.screen.SetContent(x, y, r, nil, style)
}

func (f *frontend) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.put(x, y, r, style)
		x++
	}
}

func (f *frontend) centered(y int, s string, style tcell.Style) {
	cols, _ := f.screen.Size()
	f.text((cols-len([]rune(s)))/2, y, s, style)
}

func (f *frontend) drawPlayfield(cols, rows int, session game.Session) {
	arena := f.world.Arena()
	at := func(b game.Body) (int, int) {
		return cell(b.Pos[0], b.Pos[1], arena.W, arena.H, cols, rows)
	}

	for b := range f.world.ShieldPickups() {
		x, y := at(b)
		f.put(x, y, '◆', pickupStyle)
	}
	for b := range f.world.Stars() {
		x, y := at(b)
		f.put(x, y, '*', starStyle)
	}
	for b := range f.world.Bombs() {
		x, y := at(b)
		f.put(x, y, '●', bombStyle)
	}
	for b := range f.world.Bullets() {
		x, y := at(b)
		f.put(x, y, '|', bulletStyle)
	}

	player := f.world.Player()
	x, y := cell(player.Pos[0], player.Pos[1], arena.W, arena.H, cols, rows)
	style := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	if session.Character >= 0 && session.Character < len(f.styles) {
		style = f.styles[session.Character]
	}
	if player.Shield {
		f.put(x-1, y, '(', shieldStyle)
		f.put(x+1, y, ')', shieldStyle)
	}
	f.put(x, y, '@', style)
}

func (f *frontend) drawHUD(cols int) {
	hud := f.world.HUD()
	line := fmt.Sprintf(" %s  %s  %s", hud.Score, hud.Lives, hud.Status)
	for x := 0; x < cols; x++ {
		f.put(x, 0, ' ', hudStyle)
	}
	f.text(0, 0, line, hudStyle)
}

func (f *frontend) drawTitle(cols, rows int) {
	top := rows/2 - len(f.cfg.Characters) - 3
	f.centered(top, "S T A R F A L L", starStyle)
	f.centered(top+2, "Choose your pilot", textStyle)
	for i, ch := range f.cfg.Characters {
		f.centered(top+4+i, fmt.Sprintf("%d) %s", i+1, ch.Name), f.styles[i])
	}
	hint := "arrows/wasd move, space shoots, b boosts, q quits"
	f.centered(top+5+len(f.cfg.Characters), hint, textStyle)
}
