package reconcile

import "strings"

// Config holds the audit policy of a deployment.
//
// ExcludedDepartments match cells of DepartmentColumn exactly. The default
// identifiers come from the Arabic exports, whose department header is
// "الدائرة", so deployments reading those files set DepartmentColumn to it.
// A table missing the column is audited unfiltered and the report carries a
// warning.
type Config struct {
	// Preset selects the join key preset (id, name, id-ar, name-ar).
	Preset string `mapstructure:"preset" default:"id"`
	// KeyPhrases overrides the preset with explicit phrases when set.
	KeyPhrases []string `mapstructure:"key_phrases" default:""`
	// DepartmentColumn is the column used for exclusion and difference labels.
	DepartmentColumn string `mapstructure:"department_column" default:"department"`
	// ExcludedDepartments lists department identifiers removed before matching.
	ExcludedDepartments []string `mapstructure:"excluded_departments" default:"HC.نادي عجمان للفروسية,PD.الشرطة المحلية لإمارة عجمان,RC.الديوان الأميري"`
	// UnknownDepartment labels differences when the old table has no department column.
	UnknownDepartment string `mapstructure:"unknown_department" default:"unknown"`
	// ReportOneSidedNulls reports a difference when only one side is empty.
	ReportOneSidedNulls bool `mapstructure:"report_one_sided_nulls" default:"false"`
	// NullSentinel renders a null side in exported reports.
	NullSentinel string `mapstructure:"null_sentinel" default:"NULL"`
	// Workers splits the field diff across goroutines when above 1.
	Workers int `mapstructure:"workers" default:"1"`
}

// Policy builds the audit policy described by the configuration.
func (c Config) Policy() (Policy, error) {
	var key JoinKeySpec
	phrases := nonEmpty(c.KeyPhrases)
	if len(phrases) > 0 {
		key = CustomKey(phrases)
	} else {
		preset := c.Preset
		if preset == "" {
			preset = PresetByID
		}
		var err error
		key, err = LookupPreset(preset)
		if err != nil {
			return Policy{}, err
		}
	}

	return Policy{
		Key: key,
		Exclusion: ExclusionPolicy{
			Column:      c.DepartmentColumn,
			Departments: nonEmpty(c.ExcludedDepartments),
		},
		Options: Options{
			ReportOneSidedNulls: c.ReportOneSidedNulls,
			DepartmentColumn:    c.DepartmentColumn,
			UnknownDepartment:   c.UnknownDepartment,
			Workers:             c.Workers,
		},
	}, nil
}

// nonEmpty trims list entries from the environment and drops blanks.
func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
