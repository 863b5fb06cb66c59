package input

// Printable ASCII keys map to their code point, named keys live above 0x80
const (
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
)

const (
	KeyUp Key = 0x80 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

var keyNames = map[string]Key{
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"space":     KeySpace,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"pgup":      KeyPageUp,
	"pgdn":      KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"insert":    KeyInsert,
	"delete":    KeyDelete,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
}

// KeyByName resolves a named key or a single printable ASCII character
func KeyByName(name string) (Key, bool) {
	if k, ok := keyNames[name]; ok {
		return k, true
	}
	if len(name) == 1 && name[0] >= 0x21 && name[0] < 0x7F {
		return Key(name[0]), true
	}
	return 0, false
}

// KeyNames returns the named-key table for script bindings
func KeyNames() map[string]Key {
	out := make(map[string]Key, len(keyNames))
	for k, v := range keyNames {
		out[k] = v
	}
	return out
}
