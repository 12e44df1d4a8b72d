// Package codec centralizes encoding of mass documents.
//
// A mass document maps textual propositions (see frame.Format) to masses:
//
//	{"['a']": 0.6, "['a', 'b']": 0.4}
//
// The same document can be carried as JSON, YAML or CBOR, optionally
// compressed with LZ4 or ZSTD. Codecs only move bytes to and from Go values;
// proposition keys are parsed by the caller.
package codec

import (
	"fmt"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
// "<name>+lz4" and "<name>+zstd" wrap a built-in codec in Compressed.
func ByName(name string) (Codec, bool) {
	if base, comp, ok := strings.Cut(name, "+"); ok {
		inner, found := ByName(base)
		if !found || strings.Contains(comp, "+") {
			return nil, false
		}
		ct, found := ParseCompression(comp)
		if !found {
			return nil, false
		}
		return Compressed{Inner: inner, Compression: ct}, true
	}

	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "yaml":
		return YAML{}, true
	case "cbor":
		return CBOR{}, true
	default:
		return nil, false
	}
}

// Names lists the built-in base codec names.
func Names() []string {
	return []string{"json", "go-json", "yaml", "cbor"}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
