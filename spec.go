package specfill

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Region Geographic scope of an evaluation spec
type Region struct {
	Name     string `json:"name,omitempty"`
	OSMID    int64  `json:"osm_id,omitempty"`
	Timezone string `json:"timezone"`
}

// CalibrationTest Single calibration run joined against the sensing config registry
type CalibrationTest struct {
	ID       string        `json:"id,omitempty"`
	Mode     Mode          `json:"mode,omitempty"`
	StartLoc *Location     `json:"start_loc,omitempty"`
	EndLoc   *Location     `json:"end_loc,omitempty"`
	Config   SensingConfig `json:"config,omitempty"`
}

// SensingSetting Pairwise comparison of sensing configs for the evaluation
type SensingSetting struct {
	Name           string          `json:"name,omitempty"`
	Compare        []string        `json:"compare"`
	SensingConfigs []SensingConfig `json:"sensing_configs,omitempty"`
}

// EvalSpec Declarative trip-evaluation specification. Read whole, enriched stage by stage, written whole.
type EvalSpec struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Region       Region `json:"region"`
	StartFmtDate string `json:"start_fmt_date"`
	EndFmtDate   string `json:"end_fmt_date"`
	StartTs      int64  `json:"start_ts,omitempty"`
	EndTs        int64  `json:"end_ts,omitempty"`

	CalibrationTests []*CalibrationTest `json:"calibration_tests,omitempty"`
	EvaluationTrips  []*Trip            `json:"evaluation_trips,omitempty"`
	SensingSettings  []*SensingSetting  `json:"sensing_settings,omitempty"`
}

// ReadSpecFromFile reads a whole evaluation spec from a JSON file
func ReadSpecFromFile(fileName string) (*EvalSpec, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	spec := &EvalSpec{}
	if err := json.Unmarshal(data, spec); err != nil {
		return nil, errors.Wrap(err, "Decode spec")
	}
	return spec, nil
}

// WriteToFile writes the whole spec as indented JSON
func (spec *EvalSpec) WriteToFile(fileName string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Encode spec")
	}
	return errors.Wrap(os.WriteFile(fileName, data, 0644), "File write")
}

const fmtDateLayout = "2006-01-02"

func parseFmtDate(fmtDate string, location *time.Location) (int64, error) {
	t, err := time.ParseInLocation(fmtDateLayout, fmtDate, location)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
