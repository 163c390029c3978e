package submarine

import (
	"fmt"

	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/water"
	"subsim/internal/sims/submarine/wire"
)

// TemplateCell is the saved classification of one water cell.
type TemplateCell uint8

const (
	TemplateInside TemplateCell = iota
	TemplateSea
	TemplateWater
	TemplateWall
	TemplateGlass
)

var templateCellNames = [...]string{"inside", "sea", "water", "wall", "glass"}

// TemplateCellNames lists the text form of every cell class.
func TemplateCellNames() []string {
	return append([]string(nil), templateCellNames[:]...)
}

func (c TemplateCell) String() string {
	if int(c) < len(templateCellNames) {
		return templateCellNames[c]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c TemplateCell) MarshalText() ([]byte, error) {
	if int(c) >= len(templateCellNames) {
		return nil, fmt.Errorf("submarine: cannot marshal template cell %d", uint8(c))
	}
	return []byte(templateCellNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TemplateCell) UnmarshalText(b []byte) error {
	for i, name := range templateCellNames {
		if name == string(b) {
			*c = TemplateCell(i)
			return nil
		}
	}
	return fmt.Errorf("submarine: unknown template cell %q", b)
}

// ObjectPlacement is one object of a template.
type ObjectPlacement struct {
	Kind     object.Kind     `json:"kind"`
	X        int             `json:"x" jsonschema:"minimum=0"`
	Y        int             `json:"y" jsonschema:"minimum=0"`
	Settings object.Settings `json:"settings,omitempty"`
}

// SubmarineTemplate is what the save/load collaborator hands the core.
// Background is RGBA pixel data passed through untouched.
type SubmarineTemplate struct {
	Width      int               `json:"width" jsonschema:"minimum=3"`
	Height     int               `json:"height" jsonschema:"minimum=3"`
	WaterCells []TemplateCell    `json:"water_cells" jsonschema:"description=Row-major cell classification"`
	Background []byte            `json:"background,omitempty" jsonschema:"description=Opaque RGBA pixels width*height*4"`
	Objects    []ObjectPlacement `json:"objects,omitempty"`
	Wires      []wire.Polyline   `json:"wires,omitempty"`
}

// Validate reports the first problem that would stop the template from
// expanding.
func (t *SubmarineTemplate) Validate() error {
	if t.Width < 3 || t.Height < 3 {
		return fmt.Errorf("submarine: template size %dx%d is below 3x3", t.Width, t.Height)
	}
	if n := t.Width * t.Height; len(t.WaterCells) != n {
		return fmt.Errorf("submarine: template has %d water cells, want %d", len(t.WaterCells), n)
	}
	if len(t.Background) != 0 && len(t.Background) != t.Width*t.Height*4 {
		return fmt.Errorf("submarine: background has %d bytes, want %d", len(t.Background), t.Width*t.Height*4)
	}
	for i, c := range t.WaterCells {
		if int(c) >= len(templateCellNames) {
			return fmt.Errorf("submarine: water cell %d has unknown class %d", i, uint8(c))
		}
	}
	for i, p := range t.Objects {
		if !p.Kind.Valid() {
			return fmt.Errorf("submarine: object %d: unknown kind %d", i, uint8(p.Kind))
		}
		if !object.Fits(p.Kind, p.X, p.Y, t.Width, t.Height) {
			return fmt.Errorf("submarine: object %d: %s at (%d,%d) does not fit", i, p.Kind, p.X, p.Y)
		}
	}
	for i, p := range t.Wires {
		if err := p.Validate(t.Width, t.Height); err != nil {
			return fmt.Errorf("submarine: wire %d: %w", i, err)
		}
	}
	return nil
}

// expand builds a submarine from a validated template.
func (t *SubmarineTemplate) expand() *Submarine {
	s := newSubmarine(t.Width, t.Height)
	for i, c := range t.WaterCells {
		cell := s.Water.Cell(i%t.Width, i/t.Width)
		switch c {
		case TemplateInside:
			cell.ClearWall()
		case TemplateSea:
			cell.MakeSea()
		case TemplateWater:
			cell.ClearWall()
			cell.Fill()
		case TemplateWall:
			cell.MakeWall(water.MaterialNormal)
		case TemplateGlass:
			cell.MakeWall(water.MaterialGlass)
		default:
			panic(fmt.Sprintf("submarine: unknown template cell %d", c))
		}
	}
	for _, p := range t.Wires {
		if err := s.Wires.ApplyPolyline(p); err != nil {
			panic(err)
		}
	}
	for _, p := range t.Objects {
		s.Objects = append(s.Objects, object.New(p.Kind, p.X, p.Y, p.Settings))
	}
	s.Background = append([]byte(nil), t.Background...)
	return s
}

// Template exports the submarine's current layout. Interior cells at least
// half full are saved as water.
func (s *Submarine) Template() SubmarineTemplate {
	w, h := s.Water.Width(), s.Water.Height()
	t := SubmarineTemplate{
		Width:      w,
		Height:     h,
		WaterCells: make([]TemplateCell, w*h),
		Background: append([]byte(nil), s.Background...),
		Wires:      s.Wires.WirePoints(),
	}
	for i := range t.WaterCells {
		c := s.Water.Cell(i%w, i/w)
		switch c.Kind() {
		case water.Sea:
			t.WaterCells[i] = TemplateSea
		case water.Wall:
			if c.Material() == water.MaterialGlass {
				t.WaterCells[i] = TemplateGlass
			} else {
				t.WaterCells[i] = TemplateWall
			}
		case water.Inside:
			if c.Level() >= water.FullLevel/2 {
				t.WaterCells[i] = TemplateWater
			} else {
				t.WaterCells[i] = TemplateInside
			}
		}
	}
	for _, o := range s.Objects {
		t.Objects = append(t.Objects, ObjectPlacement{Kind: o.Kind, X: o.X, Y: o.Y, Settings: o.Settings()})
	}
	return t
}

// HullTemplate builds a sealed rectangular hull: a wall frame around an
// empty interior.
func HullTemplate(w, h int) *SubmarineTemplate {
	t := &SubmarineTemplate{Width: w, Height: h, WaterCells: make([]TemplateCell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				t.WaterCells[y*w+x] = TemplateWall
			}
		}
	}
	return t
}
