// File: lixenwraith/petmaster/type.go
package petmaster

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Bool returns the value of key coerced to bool, or def when the key is absent or not coercible.
// Accepts true/false, yes/no, on/off and numbers (0 is false).
func (d *Document) Bool(key string, def bool) bool {
	val, found := d.Get(key)
	if !found {
		return def
	}
	b, err := toBool(val)
	if err != nil {
		return def
	}
	return b
}

// Int returns the value of key coerced to int, or def when the key is absent or not coercible.
// Floats are truncated.
func (d *Document) Int(key string, def int) int {
	val, found := d.Get(key)
	if !found {
		return def
	}
	i, err := toInt(val)
	if err != nil {
		return def
	}
	return i
}

// Float64 returns the value of key coerced to float64, or def.
func (d *Document) Float64(key string, def float64) float64 {
	val, found := d.Get(key)
	if !found {
		return def
	}
	f, err := toFloat64(val)
	if err != nil {
		return def
	}
	return f
}

// String returns the value of key rendered as a string, or def when the key is absent
// or holds a non-scalar value.
func (d *Document) String(key string, def string) string {
	val, found := d.Get(key)
	if !found || val == nil {
		return def
	}
	s, err := toString(val)
	if err != nil {
		return def
	}
	return s
}

func toString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string", val)
	}
}

func toInt(val any) (int, error) {
	if val == nil {
		return 0, fmt.Errorf("nil value cannot be converted to int")
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(int(^uint(0)>>1)) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int: overflow", u)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		return int(v.Float()), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		i, err := strconv.ParseInt(s, 0, 64)
		if err == nil {
			return int(i), nil
		}
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("cannot convert string %q to int: %w", s, err)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int", val)
}

func toFloat64(val any) (float64, error) {
	if val == nil {
		return 0, fmt.Errorf("nil value cannot be converted to float64")
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64: %w", s, err)
		}
		return f, nil
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to float64", val)
}

func toBool(val any) (bool, error) {
	if val == nil {
		return false, fmt.Errorf("nil value cannot be converted to bool")
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return parseBool(v.String())
	// 0 is false, anything else is true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool", val)
}

// parseBool extends strconv.ParseBool with the YAML 1.1 words operators still type by hand.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("cannot convert string %q to bool: %w", s, err)
	}
	return b, nil
}
