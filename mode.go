package specfill

import (
	"encoding/json"
	"fmt"
)

// Mode Travel mode of a single trip leg
type Mode uint16

const (
	MODE_CAR = Mode(iota + 1)
	MODE_WALKING
	MODE_BICYCLING
	MODE_BUS
	MODE_TRAIN
	MODE_SUBWAY
	MODE_LIGHT_RAIL
)

func (iotaIdx Mode) String() string {
	return [...]string{"CAR", "WALKING", "BICYCLING", "BUS", "TRAIN", "SUBWAY", "LIGHT_RAIL"}[iotaIdx-1]
}

// Routable reports whether the routing service can route this mode directly.
// Rail modes follow fixed infrastructure and are declared via relations instead.
func (iotaIdx Mode) Routable() bool {
	switch iotaIdx {
	case MODE_CAR, MODE_WALKING, MODE_BICYCLING, MODE_BUS:
		return true
	}
	return false
}

// ParseMode returns Mode for given string representation
func ParseMode(modeStr string) (Mode, error) {
	switch modeStr {
	case "CAR":
		return MODE_CAR, nil
	case "WALKING":
		return MODE_WALKING, nil
	case "BICYCLING":
		return MODE_BICYCLING, nil
	case "BUS":
		return MODE_BUS, nil
	case "TRAIN":
		return MODE_TRAIN, nil
	case "SUBWAY":
		return MODE_SUBWAY, nil
	case "LIGHT_RAIL":
		return MODE_LIGHT_RAIL, nil
	}
	return 0, fmt.Errorf("Unknown travel mode: '%s'", modeStr)
}

func (iotaIdx Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(iotaIdx.String())
}

func (iotaIdx *Mode) UnmarshalJSON(data []byte) error {
	var modeStr string
	if err := json.Unmarshal(data, &modeStr); err != nil {
		return err
	}
	mode, err := ParseMode(modeStr)
	if err != nil {
		return err
	}
	*iotaIdx = mode
	return nil
}
