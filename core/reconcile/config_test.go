package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		phrases []string
	}{
		{"ByID", PresetByID, []string{"employee", "number"}},
		{"ByName", PresetByName, []string{"employee", "name"}},
		{"ByIDArabic", PresetByIDAr, []string{"الرقم", "الوظيفي"}},
		{"ByNameArabic", PresetByNameAr, []string{"اسم", "الموظف"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := LookupPreset(tt.preset)
			require.NoError(t, err)
			assert.Equal(t, tt.preset, spec.Name)
			assert.Equal(t, tt.phrases, spec.Phrases)
		})
	}

	_, err := LookupPreset("badge")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, []string{"id", "id-ar", "name", "name-ar"}, PresetNames())
}

func TestConfig_Policy(t *testing.T) {
	t.Run("preset", func(t *testing.T) {
		cfg := Config{
			Preset:              PresetByName,
			DepartmentColumn:    "department",
			ExcludedDepartments: []string{"HC.X", ""},
			UnknownDepartment:   "n/a",
			Workers:             2,
		}
		p, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, ByNamePreset(), p.Key)
		assert.Equal(t, ExclusionPolicy{Column: "department", Departments: []string{"HC.X"}}, p.Exclusion)
		assert.Equal(t, "department", p.Options.DepartmentColumn)
		assert.Equal(t, "n/a", p.Options.UnknownDepartment)
		assert.Equal(t, 2, p.Options.Workers)
		assert.False(t, p.Options.ReportOneSidedNulls)
	})

	t.Run("list entries are trimmed", func(t *testing.T) {
		cfg := Config{
			KeyPhrases:          []string{" staff", "code "},
			DepartmentColumn:    "department",
			ExcludedDepartments: []string{"HC.X", " RC.Y", "  "},
		}
		p, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, []string{"HC.X", "RC.Y"}, p.Exclusion.Departments)
		assert.Equal(t, []string{"staff", "code"}, p.Key.Phrases)
	})

	t.Run("explicit phrases override preset", func(t *testing.T) {
		cfg := Config{Preset: PresetByID, KeyPhrases: []string{"staff", "code"}}
		p, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, CustomKey([]string{"staff", "code"}), p.Key)
	})

	t.Run("empty preset defaults to id", func(t *testing.T) {
		p, err := Config{}.Policy()
		require.NoError(t, err)
		assert.Equal(t, ByIDPreset(), p.Key)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := Config{Preset: "nope"}.Policy()
		assert.Error(t, err)
	})
}
