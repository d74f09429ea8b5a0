package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ParseStringListMap decodes a JSON object whose values are lists of strings,
// such as a module-to-rules override or a module-to-signals map. A single
// string value is accepted as a one-element list. An empty input yields nil.
func ParseStringListMap(data string) (map[string][]string, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	var raw any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(`the provided JSON must be an object, e.g. '{"module_a": ["sig1"]}'`)
	}
	return DecodeStringLists(obj)
}

// DecodeStringLists converts a loosely typed mapping into map[string][]string
// using weak decoding, so scalars become one-element lists.
func DecodeStringLists(raw map[string]any) (map[string][]string, error) {
	var out map[string][]string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode string lists: %w", err)
	}
	return out, nil
}
