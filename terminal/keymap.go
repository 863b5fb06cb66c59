package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rigsim/input"
)

var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyBackspace: input.KeyBackspace,
	tcell.KeyTab:       input.KeyTab,
	tcell.KeyEnter:     input.KeyEnter,
	tcell.KeyEscape:    input.KeyEscape,
	tcell.KeyUp:        input.KeyUp,
	tcell.KeyDown:      input.KeyDown,
	tcell.KeyLeft:      input.KeyLeft,
	tcell.KeyRight:     input.KeyRight,
	tcell.KeyPgUp:      input.KeyPageUp,
	tcell.KeyPgDn:      input.KeyPageDown,
	tcell.KeyHome:      input.KeyHome,
	tcell.KeyEnd:       input.KeyEnd,
	tcell.KeyInsert:    input.KeyInsert,
	tcell.KeyDelete:    input.KeyDelete,
	tcell.KeyF1:        input.KeyF1,
	tcell.KeyF2:        input.KeyF2,
	tcell.KeyF3:        input.KeyF3,
	tcell.KeyF4:        input.KeyF4,
}

// mapKey converts a tcell key event to an input key
// Printable ASCII runes map to themselves, letters fold to lower case
func mapKey(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() != tcell.KeyRune {
		k, ok := namedKeys[ev.Key()]
		return k, ok
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 0x20 || r >= 0x7F {
		return 0, false
	}
	return input.Key(r), true
}

var mouseButtons = [...]tcell.ButtonMask{
	tcell.Button1,
	tcell.Button2,
	tcell.Button3,
	tcell.Button4,
	tcell.Button5,
	tcell.Button6,
	tcell.Button7,
	tcell.Button8,
}
