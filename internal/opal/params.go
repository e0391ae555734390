package opal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

// ParseStringList normalizes a parameter documented as "JSON array or
// comma-separated string".
//
// A value starting with '[' is parsed as a strict JSON array of strings;
// malformed JSON is a descriptive 400, never a silent fall-through to
// comma splitting. Anything else is split on commas with each element
// trimmed; empty elements are dropped.
func ParseStringList(field, raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, errs.NewBadRequestError(
				fmt.Sprintf("%s is not a valid JSON array: %s (value: %s)", field, err.Error(), raw),
				false,
				nil,
				[]errs.FieldError{{Field: field, Error: "must be a JSON array of strings or a comma-separated string"}},
			)
		}
		return items, nil
	}

	var items []string
	for _, part := range strings.Split(trimmed, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items, nil
}

// ParseID parses a parameter documented as a numeric identifier.
//
// Non-integer input is a descriptive 400 that includes the parser's
// complaint and the offending raw value, rather than a silent zero.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError(
			fmt.Sprintf("%s must be a numeric id: %s (value: %q)", field, err.Error(), raw),
			false,
			nil,
			[]errs.FieldError{{Field: field, Error: "must be a numeric id"}},
		)
	}
	return id, nil
}

// formatIntegral renders a float64 that is known to hold an integral
// value (a JSON-decoded id) without a fractional part.
func formatIntegral(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
