package validation

import "strings"

// Violations collects field-level validation failures for a request.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// MinInt flags val when it is below minVal.
func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "too_small"
	}
}

// NotEmptySlice flags an items field with no entries.
func NotEmptySlice(field string, length int, v Violations) {
	if length == 0 {
		v[field] = "required"
	}
}
