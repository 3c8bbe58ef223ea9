package task

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"taskledger/internal/config"
	"taskledger/internal/model"
)

// Codec converts the whole collection to and from file contents.
type Codec interface {
	Name() string
	Encode(tasks []model.Task) ([]byte, error)
	Decode(b []byte) ([]model.Task, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return config.FormatJSON }

func (jsonCodec) Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (jsonCodec) Decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return config.FormatYAML }

func (yamlCodec) Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return yaml.Marshal(tasks)
}

func (yamlCodec) Decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := yaml.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CodecFor picks a codec by explicit format, falling back to the file
// extension (.yaml/.yml → YAML, anything else → JSON).
func CodecFor(path, format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case config.FormatJSON:
		return jsonCodec{}, nil
	case config.FormatYAML, "yml":
		return yamlCodec{}, nil
	case "":
	default:
		return nil, fmt.Errorf("unknown store format %q", format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	default:
		return jsonCodec{}, nil
	}
}
