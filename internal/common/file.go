package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ReadFileToInterface reads path and decodes it as YAML or JSON into T.
func ReadFileToInterface[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var zero T
	return ReadDataToInterface(data, zero)
}

// ReadDataToInterface decodes YAML or JSON. The format is picked from the
// first non-space character; YAML goes through JSON so only json tags apply.
func ReadDataToInterface[T any](data []byte, _ T) (*T, error) {

	var item T

	data = bytes.TrimLeftFunc(data, unicode.IsSpace)

	if len(data) == 0 {
		return nil, fmt.Errorf("no data provided")

	} else if len(data) < 10 {
		return nil, fmt.Errorf("data too short to determine format")

	} else if data[0] == '{' || data[0] == '[' {
		logrus.Debugln("Data format detected: JSON")
	} else {
		var yamlData any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			logrus.WithError(err).Debugln("Failed to unmarshal YAML")
			return nil, err
		}

		if jsonData, err := json.Marshal(yamlData); err != nil {
			logrus.WithError(err).Debugln("Failed to convert YAML to JSON")
			return nil, err
		} else {
			data = jsonData
		}
	}

	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON data: %w", err)
	}

	return &item, nil
}
