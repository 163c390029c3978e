package submarine

import (
	"strconv"

	"subsim/internal/core"
)

// UpdateSettings toggles the subsystems a tick runs. It is part of the world
// state and only changes through a ChangeUpdateSettings command.
type UpdateSettings struct {
	Navigation bool
	Position   bool
	Water      bool
	Gravity    bool
	Inertia    bool
	Wires      bool
	Objects    bool
	Sonar      bool
	Collisions bool
	Docking    bool
}

// DefaultUpdateSettings enables every subsystem.
func DefaultUpdateSettings() UpdateSettings {
	return UpdateSettings{
		Navigation: true,
		Position:   true,
		Water:      true,
		Gravity:    true,
		Inertia:    true,
		Wires:      true,
		Objects:    true,
		Sonar:      true,
		Collisions: true,
		Docking:    true,
	}
}

var settingKeys = []struct {
	key, label string
	field      func(*UpdateSettings) *bool
}{
	{"navigation", "Navigation", func(s *UpdateSettings) *bool { return &s.Navigation }},
	{"position", "Position", func(s *UpdateSettings) *bool { return &s.Position }},
	{"water", "Water", func(s *UpdateSettings) *bool { return &s.Water }},
	{"gravity", "Gravity", func(s *UpdateSettings) *bool { return &s.Gravity }},
	{"inertia", "Inertia", func(s *UpdateSettings) *bool { return &s.Inertia }},
	{"wires", "Wires", func(s *UpdateSettings) *bool { return &s.Wires }},
	{"objects", "Objects", func(s *UpdateSettings) *bool { return &s.Objects }},
	{"sonar", "Sonar", func(s *UpdateSettings) *bool { return &s.Sonar }},
	{"collisions", "Collisions", func(s *UpdateSettings) *bool { return &s.Collisions }},
	{"docking", "Docking", func(s *UpdateSettings) *bool { return &s.Docking }},
}

// SettingsFromMap starts from the defaults and applies flag-style overrides.
// Unparseable values are ignored.
func SettingsFromMap(cfg map[string]string) UpdateSettings {
	s := DefaultUpdateSettings()
	for _, k := range settingKeys {
		v, ok := cfg[k.key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseBool(v); err == nil {
			*k.field(&s) = parsed
		}
	}
	return s
}

// With returns a copy with key set to v. Unknown keys leave s unchanged and
// report false.
func (s UpdateSettings) With(key string, v bool) (UpdateSettings, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			*k.field(&s) = v
			return s, true
		}
	}
	return s, false
}

func (s UpdateSettings) parameters() []core.Parameter {
	out := make([]core.Parameter, 0, len(settingKeys))
	for _, k := range settingKeys {
		out = append(out, core.Parameter{
			Key:   k.key,
			Label: k.label,
			Type:  core.ParamTypeBool,
			Value: strconv.FormatBool(*k.field(&s)),
		})
	}
	return out
}
