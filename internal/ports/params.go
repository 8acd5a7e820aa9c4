package ports

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ActionParams is the flat parameter set every front end produces.
type ActionParams map[string]interface{}

// Lookup returns the first key that is present with a non-nil value.
func (p ActionParams) Lookup(keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := p[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first present value formatted as a string.
func (p ActionParams) String(keys ...string) string {
	v, ok := p.Lookup(keys...)
	if !ok {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Int returns the first present value as an integer. present is false when
// none of the keys is set; err is non-nil when the value is not an integer.
func (p ActionParams) Int(keys ...string) (value int, present bool, err error) {
	v, ok := p.Lookup(keys...)
	if !ok {
		return 0, false, nil
	}

	switch val := v.(type) {
	case int:
		return val, true, nil
	case int64:
		return int(val), true, nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, true, fmt.Errorf("%v is not an integer", val)
		}
		return int(val), true, nil
	case json.Number:
		n, err := strconv.Atoi(val.String())
		if err != nil {
			return 0, true, fmt.Errorf("%s is not an integer", val)
		}
		return n, true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, true, fmt.Errorf("%q is not an integer", val)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("%v is not an integer", val)
	}
}
