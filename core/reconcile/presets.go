package reconcile

import (
	"errors"
	"fmt"
	"sort"
)

// Preset names for the join key.
const (
	PresetByID       = "id"
	PresetByName     = "name"
	PresetByIDAr     = "id-ar"
	PresetByNameAr   = "name-ar"
	PresetCustomName = "custom"
)

// ByIDPreset matches an employee number column, e.g. "employee number".
func ByIDPreset() JoinKeySpec {
	return JoinKeySpec{Name: PresetByID, Phrases: []string{"employee", "number"}}
}

// ByNamePreset matches an employee name column, e.g. "employee name".
func ByNamePreset() JoinKeySpec {
	return JoinKeySpec{Name: PresetByName, Phrases: []string{"employee", "name"}}
}

// ByIDArabicPreset matches the Arabic employee number header "الرقم الوظيفي".
func ByIDArabicPreset() JoinKeySpec {
	return JoinKeySpec{Name: PresetByIDAr, Phrases: []string{"الرقم", "الوظيفي"}}
}

// ByNameArabicPreset matches the Arabic employee name header "اسم الموظف".
func ByNameArabicPreset() JoinKeySpec {
	return JoinKeySpec{Name: PresetByNameAr, Phrases: []string{"اسم", "الموظف"}}
}

// ErrUnknownPreset is returned by LookupPreset for names without a preset.
var ErrUnknownPreset = errors.New("unknown key preset")

var presets = map[string]func() JoinKeySpec{
	PresetByID:     ByIDPreset,
	PresetByName:   ByNamePreset,
	PresetByIDAr:   ByIDArabicPreset,
	PresetByNameAr: ByNameArabicPreset,
}

// LookupPreset returns the join key preset with the given name.
func LookupPreset(name string) (JoinKeySpec, error) {
	build, ok := presets[name]
	if !ok {
		return JoinKeySpec{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return build(), nil
}

// PresetNames lists the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CustomKey builds a JoinKeySpec from explicit phrases.
func CustomKey(phrases []string) JoinKeySpec {
	return JoinKeySpec{Name: PresetCustomName, Phrases: phrases}
}
