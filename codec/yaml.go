package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAML is a YAML codec backed by gopkg.in/yaml.v3.
//
// Decoding is strict: unknown struct fields are rejected. Proposition keys
// must be quoted in YAML because the textual form starts with '['.
type YAML struct{}

// Marshal encodes the value to YAML.
func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

// Unmarshal decodes the YAML data into v.
func (YAML) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("yaml").
func (YAML) Name() string { return "yaml" }
