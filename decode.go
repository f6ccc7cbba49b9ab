// FILE: lixenwraith/petmaster/decode.go
package petmaster

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// settingsTagName ties Settings fields to document keys.
const settingsTagName = "yaml"

// decodeSettings overlays the entries of input onto target. Fields without an
// input entry keep their current value.
func decodeSettings(input map[string]any, target *Settings) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          settingsTagName,
		WeaklyTypedInput: true,
		DecodeHook:       settingsDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// encodeSettings flattens s into target keyed by document key.
func encodeSettings(s Settings, target *map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: settingsTagName,
	})
	if err != nil {
		return fmt.Errorf("encoder creation failed: %w", err)
	}

	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	return nil
}

func settingsDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToBoolHookFunc(),
		trimStringHookFunc(),
	)
}

// stringToBoolHookFunc accepts yes/no and on/off in addition to what strconv.ParseBool knows.
func stringToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		return parseBool(data.(string))
	}
}

// trimStringHookFunc strips surrounding whitespace from strings bound for numeric fields.
func trimStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Float32, reflect.Float64:
			return strings.TrimSpace(data.(string)), nil
		}
		return data, nil
	}
}
