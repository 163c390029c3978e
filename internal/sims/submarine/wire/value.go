package wire

// Color identifies one wire layer. Bundle is the multi-channel cable layer;
// the rest are thin single-value wires.
type Color uint8

const (
	Bundle Color = iota
	Purple
	Brown
	Blue
	Green

	NumColors = 5
)

// Priority lists colours in the order receivers consult them.
var Priority = [NumColors]Color{Bundle, Purple, Brown, Blue, Green}

// ThinColors lists the single-value colours. Their position in this array is
// the colour channel inside a bundle.
var ThinColors = [4]Color{Purple, Brown, Blue, Green}

var colorNames = [NumColors]string{"bundle", "purple", "brown", "blue", "green"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// ParseColor converts a colour name back into a Color.
func ParseColor(s string) (Color, bool) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, ok := ParseColor(string(b))
	if !ok {
		return &UnknownColorError{Name: string(b)}
	}
	*c = v
	return nil
}

// UnknownColorError reports an unrecognised colour name.
type UnknownColorError struct{ Name string }

func (e *UnknownColorError) Error() string { return "wire: unknown color " + e.Name }

// channel returns the bundle channel of a thin colour.
func (c Color) channel() int { return int(c) - 1 }

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindNone means no wire of this colour is present.
	KindNone Kind = iota
	// KindNotConnected is a wire collapsed by a 3+-way junction.
	KindNotConnected
	KindNoSignal
	KindPower
	KindLogic
	KindBundle
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotConnected:
		return "not-connected"
	case KindNoSignal:
		return "no-signal"
	case KindPower:
		return "power"
	case KindLogic:
		return "logic"
	case KindBundle:
		return "bundle"
	default:
		return "unknown"
	}
}

// MaxSignal is the strength of a freshly written value.
const MaxSignal = 256

// Value is the content of one colour in one cell. Fields other than Kind are
// meaningful only for the kinds that use them.
type Value struct {
	Kind     Kind
	Terminal bool
	Signal   uint16
	Power    uint8
	Logic    int8
	BundleID uint8
}

// IsWire reports whether a wire of this colour is present.
func (v Value) IsWire() bool { return v.Kind != KindNone }

// Carries reports whether the value holds a live power or logic signal.
func (v Value) Carries() bool { return v.Kind == KindPower || v.Kind == KindLogic }

// Cell holds one Value per colour.
type Cell struct {
	Values [NumColors]Value
}

// HasWire reports whether any colour has a wire in this cell.
func (c *Cell) HasWire() bool {
	for _, v := range c.Values {
		if v.IsWire() {
			return true
		}
	}
	return false
}
