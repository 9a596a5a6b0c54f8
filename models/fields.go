package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPayload is the root of every request-body validation error.
var ErrInvalidPayload = errors.New("invalid payload")

// PayloadError carries a client-facing message for a rejected body.
type PayloadError struct {
	Msg string
}

func (e *PayloadError) Error() string { return e.Msg }

func (e *PayloadError) Unwrap() error { return ErrInvalidPayload }

func payloadErrorf(format string, args ...interface{}) error {
	return &PayloadError{Msg: fmt.Sprintf(format, args...)}
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindBool
)

var coreFields = map[string]fieldKind{
	"name":            kindText,
	"eventName":       kindText,
	"musicPalette":    kindText,
	"vibesWanted":     kindText,
	"mood":            kindText,
	"suggestedShows":  kindText,
	"suggestedAreas":  kindText,
	"suggestedDrinks": kindText,
	"suggestedFoods":  kindText,
	"genre":           kindText,
	"vibes":           kindText,
	"crowd":           kindText,
	"experience":      kindText,
	"intensity":       kindInt,
	"crowdLevel":      kindInt,
	"public":          kindBool,
}

// Server-owned keys, silently dropped from client payloads.
var serverFields = map[string]bool{
	"id":        true,
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

func isCoreField(key string) bool {
	_, core := coreFields[key]
	return core || serverFields[key]
}

// Fields is a validated set of client-submitted values keyed by wire name.
// Core text fields hold string, sliders hold int, public holds bool and
// extension fields hold string, float64 or bool.
type Fields map[string]interface{}

// Payload is a parsed profile request body.
type Payload struct {
	Fields Fields
	// ID is the "id" (or "_id") value found in the body, if any.
	ID string
}

// ParsePayload decodes and validates a JSON object body. An empty body is
// treated as an empty object.
func ParsePayload(data []byte) (*Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &Payload{Fields: Fields{}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, payloadErrorf("Invalid JSON body")
	}
	if dec.More() {
		return nil, payloadErrorf("Invalid JSON body")
	}

	payload := &Payload{Fields: make(Fields, len(raw))}
	for _, key := range []string{"id", "_id"} {
		if s, ok := raw[key].(string); ok && payload.ID == "" {
			payload.ID = strings.TrimSpace(s)
		}
	}

	for key, value := range raw {
		if serverFields[key] {
			continue
		}
		if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			return nil, payloadErrorf("Invalid field name %q", key)
		}
		// null leaves the stored value untouched
		if value == nil {
			continue
		}
		normalized, err := normalize(key, value)
		if err != nil {
			return nil, err
		}
		payload.Fields[key] = normalized
	}
	return payload, nil
}

func normalize(key string, value interface{}) (interface{}, error) {
	kind, core := coreFields[key]
	if !core {
		switch v := value.(type) {
		case string, bool:
			return v, nil
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, payloadErrorf("Field %q must be a number", key)
			}
			return f, nil
		default:
			return nil, payloadErrorf("Field %q must be a string, number or boolean", key)
		}
	}

	switch kind {
	case kindText:
		s, ok := value.(string)
		if !ok {
			return nil, payloadErrorf("Field %q must be a string", key)
		}
		return s, nil
	case kindInt:
		n, ok := value.(json.Number)
		if !ok {
			return nil, payloadErrorf("Field %q must be an integer", key)
		}
		i, err := n.Int64()
		if err != nil {
			return nil, payloadErrorf("Field %q must be an integer", key)
		}
		return int(i), nil
	default:
		b, ok := value.(bool)
		if !ok {
			return nil, payloadErrorf("Field %q must be a boolean", key)
		}
		return b, nil
	}
}

// Name returns the trimmed name value, if present.
func (f Fields) Name() string {
	s, _ := f["name"].(string)
	return strings.TrimSpace(s)
}

// ApplyTo merges the fields onto p. Absent fields are left untouched.
func (f Fields) ApplyTo(p *Profile) {
	for key, value := range f {
		if ptr := p.textField(key); ptr != nil {
			*ptr = value.(string)
			continue
		}
		switch key {
		case "intensity":
			v := value.(int)
			p.Intensity = &v
		case "crowdLevel":
			v := value.(int)
			p.CrowdLevel = &v
		case "public":
			v := value.(bool)
			p.Public = &v
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]interface{})
			}
			p.Extra[key] = value
		}
	}
}

// NewProfile builds a profile to be inserted from validated fields.
func NewProfile(f Fields, createdAt time.Time) *Profile {
	p := &Profile{CreatedAt: createdAt}
	f.ApplyTo(p)
	return p
}
