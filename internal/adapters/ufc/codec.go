package ufc

import (
	"strconv"
	"strings"
)

// Fields is a decoded merchant handler response: normalized key to trimmed
// value. A nil value means the label was present without a ':' separator.
type Fields map[string]*string

// Decode parses a "Label: value" per line response body.
// It never fails: lines it cannot use are kept as keys without values, blank
// lines are skipped, and an empty body yields an empty map.
func Decode(body string) Fields {
	fields := make(Fields, 16)
	decodeInto(fields, body)
	return fields
}

func decodeInto(fields Fields, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		label, value, found := strings.Cut(line, ":")
		key := NormalizeLabel(label)
		if key == "" {
			continue
		}
		if !found {
			fields[key] = nil
			continue
		}
		v := strings.TrimSpace(value)
		fields[key] = &v
	}
}

// Get returns the value for key and whether the gateway supplied one
func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Value returns a copy of the value for key, or nil when absent
func (f Fields) Value(key string) *string {
	v, ok := f.Get(key)
	if !ok {
		return nil
	}
	return &v
}

// Int parses the value for key as a base-10 integer.
// Absent or non-numeric values yield nil, never zero.
func (f Fields) Int(key string) *int64 {
	v, ok := f.Get(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
