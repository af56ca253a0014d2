package settings

import (
	"encoding/json"
	"sort"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// Formats accepted by Render
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render serializes cfg in the given format
func Render(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatTOML:
		return gotoml.Marshal(cfg)
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		return yaml.Marshal(cfg)
	default:
		return nil, errors.Newf("unknown format %q (supported: toml, json, yaml)", format)
	}
}

// Keys lists every configuration key in dot notation, sorted
func Keys() []string {
	keys := GetViper().AllKeys()
	sort.Strings(keys)
	return keys
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, bool) {
	v := GetViper()
	if !v.IsSet(key) {
		return nil, false
	}
	return v.Get(key), true
}
