package repair

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

// maxDecodeDepth bounds how many layers of string-wrapped JSON are peeled
const maxDecodeDepth = 3

// RawSpellInput is the top-level shape of cached spell data. Upstream
// double-encoding means it is not always a clean list.
type RawSpellInput interface {
	isRawSpellInput()
}

// RawString is a JSON document that was itself encoded as a JSON string
type RawString string

// RawList is a list whose elements may be spell objects or JSON-encoded strings
type RawList []json.RawMessage

// RawMapping is a single spell object at the top level
type RawMapping json.RawMessage

func (RawString) isRawSpellInput()  {}
func (RawList) isRawSpellInput()    {}
func (RawMapping) isRawSpellInput() {}

// Decode classifies raw spell data by its top-level JSON kind
func Decode(data []byte) (RawSpellInput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.MalformedRecord("spell data is empty")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedRecord, "spell data is not valid JSON")
		}
		return RawString(s), nil
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedRecord, "spell data is not valid JSON")
		}
		return RawList(list), nil
	case '{':
		if !json.Valid(trimmed) {
			return nil, errors.MalformedRecord("spell data is not valid JSON")
		}
		return RawMapping(trimmed), nil
	default:
		return nil, errors.MalformedRecord("spell data must be a list, an object or a JSON string")
	}
}

// elements flattens any input shape into the list of candidate records
func elements(input RawSpellInput, depth int) ([]json.RawMessage, error) {
	switch in := input.(type) {
	case RawList:
		return in, nil
	case RawMapping:
		return []json.RawMessage{json.RawMessage(in)}, nil
	case RawString:
		if depth >= maxDecodeDepth {
			return nil, errors.MalformedRecord("spell data is nested in too many string layers")
		}
		inner, err := Decode([]byte(in))
		if err != nil {
			return nil, err
		}
		return elements(inner, depth+1)
	case nil:
		return nil, nil
	default:
		return nil, errors.Internalf("unknown raw input %T", input)
	}
}
