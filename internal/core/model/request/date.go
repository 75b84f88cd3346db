package request

import (
	"encoding/json"
	"strconv"
)

// DateText is a date key as clients send it. Falsy JSON values (false, 0 and
// "") read as empty text, meaning "no date". Other non-string values are kept
// as their JSON text so date parsing rejects them.
type DateText string

func (d *DateText) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*d = ""
	case string:
		*d = DateText(v)
	case bool:
		if v {
			*d = "true"
		} else {
			*d = ""
		}
	case float64:
		if v == 0 {
			*d = ""
		} else {
			*d = DateText(strconv.FormatFloat(v, 'f', -1, 64))
		}
	default:
		*d = DateText(data)
	}

	return nil
}
