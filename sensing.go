package specfill

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// SensingConfig One sensing regime description; the schema beyond the id is opaque to this tool
type SensingConfig map[string]interface{}

// ConfigID returns the "id" entry of the config
func (config SensingConfig) ConfigID() (string, error) {
	v, ok := config["id"]
	if !ok {
		return "", fmt.Errorf("sensing config carries no 'id'")
	}
	id, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("sensing config 'id' is not a string: %v", v)
	}
	return id, nil
}

// SensingConfigs Registry of sensing configurations keyed by id. Loaded once at startup, read-only afterwards.
type SensingConfigs map[string]SensingConfig

// LoadSensingConfigs reads the registry from a JSON file
func LoadSensingConfigs(fileName string) (SensingConfigs, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	configs := SensingConfigs{}
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, errors.Wrap(err, "Decode sensing configs")
	}
	return configs, nil
}

// Get returns the full config for given id
func (configs SensingConfigs) Get(id string) (SensingConfig, error) {
	config, ok := configs[id]
	if !ok {
		return nil, &UnknownConfigError{ID: id}
	}
	return config, nil
}
