package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean column that storage may hand back as 0/1, a native boolean
// or text. Every read and write of a task completion state goes through it, so
// responses always carry a JSON boolean.
type Flag bool

func (f Flag) Bool() bool {
	return bool(f)
}

func (f *Flag) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		*f = Flag(parseFlagText(string(v)))
	case string:
		*f = Flag(parseFlagText(v))
	default:
		return fmt.Errorf("cannot scan %T into Flag", src)
	}

	return nil
}

func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

// UnmarshalJSON coerces any JSON value: null, false, 0 and text that
// strconv.ParseBool reads as false ("", "0", "f", "false") are false,
// anything else is true.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case string:
		*f = Flag(parseFlagText(v))
	default:
		// arrays and objects are truthy
		*f = true
	}

	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(f))), nil
}

func parseFlagText(s string) bool {
	s = strings.TrimSpace(s)

	if s == "" {
		return false
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}

	return true
}
