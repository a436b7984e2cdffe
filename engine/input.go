package engine

import (
	"log"

	"github.com/gdamore/tcell/v2"
)

// HandleEvent processes one terminal event; returns false to quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		return true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if !g.input.Unlocked() {
			return g.handleGateKey(ev)
		}
		return g.handleNavKey(ev)
	}
	return true
}

func (g *Game) handleGateKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyEnter:
		if g.input.Submit(g.validator) {
			log.Printf("engine: gate unlocked")
			g.unlock()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		g.input.Backspace()
	case tcell.KeyRune:
		g.input.Insert(ev.Rune())
	}
	return true
}

func (g *Game) handleNavKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyRight, tcell.KeyEnter:
		g.nav.Next()
	case tcell.KeyLeft:
		g.nav.Prev()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'l' || r == ' ':
			g.nav.Next()
		case r == 'h':
			g.nav.Prev()
		case r == 'm':
			if err := g.ambient.Toggle(); err != nil {
				log.Printf("engine: toggle audio: %v", err)
			}
		case r >= '1' && r <= '9':
			g.nav.Jump(int(r - '0'))
		}
	}
	return true
}
