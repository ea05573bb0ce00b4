package ufc

import (
	"strconv"
	"strings"
)

// param is one wire field; a nil value is left off the query entirely
type param struct {
	key   string
	value *string
}

// Params is an ordered set of merchant handler fields.
// Encoding preserves insertion order and writes values raw: the gateway does
// not unescape them, so values must not contain '&' or '='.
type Params struct {
	fields []param
}

// NewParams creates an empty parameter list with room for the usual command size
func NewParams() *Params {
	return &Params{fields: make([]param, 0, 10)}
}

// Set appends a defined string value (an empty string is still sent)
func (p *Params) Set(key, value string) *Params {
	p.fields = append(p.fields, param{key: key, value: &value})
	return p
}

// SetInt appends a defined integer value
func (p *Params) SetInt(key string, value int64) *Params {
	return p.Set(key, strconv.FormatInt(value, 10))
}

// SetOptional appends a value that is omitted when nil
func (p *Params) SetOptional(key string, value *string) *Params {
	if value == nil {
		p.fields = append(p.fields, param{key: key})
		return p
	}
	return p.Set(key, *value)
}

// SetOptionalInt appends an integer that is omitted when nil
func (p *Params) SetOptionalInt(key string, value *int64) *Params {
	if value == nil {
		p.fields = append(p.fields, param{key: key})
		return p
	}
	return p.SetInt(key, *value)
}

// Get returns the value stored for key and whether it is defined
func (p *Params) Get(key string) (string, bool) {
	for _, f := range p.fields {
		if f.key == key && f.value != nil {
			return *f.value, true
		}
	}
	return "", false
}

// Encode renders key=value pairs joined by '&', skipping undefined fields
func (p *Params) Encode() string {
	sb := getBuffer()
	defer putBuffer(sb)

	for _, f := range p.fields {
		if f.value == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(f.key)
		sb.WriteByte('=')
		sb.WriteString(*f.value)
	}
	return sb.String()
}

// String implements fmt.Stringer for log fields
func (p *Params) String() string {
	return p.Encode()
}

// escapeRequestTarget percent-encodes only the bytes that cannot appear in an
// HTTP request target. Separators the gateway relies on ('&', '=', '+', '/')
// and existing %XX escapes are left untouched.
func escapeRequestTarget(query string) string {
	needs := false
	for i := 0; i < len(query); i++ {
		if mustEscape(query, i) {
			needs = true
			break
		}
	}
	if !needs {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 16)
	const hex = "0123456789ABCDEF"
	for i := 0; i < len(query); i++ {
		c := query[i]
		if mustEscape(query, i) {
			sb.WriteByte('%')
			sb.WriteByte(hex[c>>4])
			sb.WriteByte(hex[c&0x0f])
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func mustEscape(s string, i int) bool {
	c := s[i]
	switch {
	case c <= 0x20, c >= 0x7f:
		return true
	case c == '"', c == '<', c == '>', c == '#', c == '\\', c == '^', c == '`', c == '{', c == '|', c == '}':
		return true
	case c == '%':
		return i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])
	}
	return false
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
