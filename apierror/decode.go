package apierror

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// Decode builds an Error from a response status and raw body.
//
//   - JSON object: "message" (non-empty string) wins, then the "errors"
//     object, otherwise NoPayload.
//   - JSON string: TextPayload.
//   - Any other JSON value or an empty body: NoPayload.
//   - Non-JSON text: TextPayload with the body as-is.
//
// A key repeated in the same object keeps its last value. Decode never fails.
func Decode(status int, body []byte) *Error {
	e := New(status, NoPayload{})

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return e
	}
	if !gjson.ValidBytes(trimmed) {
		e.Payload = TextPayload{Text: string(body)}
		return e
	}

	root := gjson.ParseBytes(trimmed)
	switch {
	case root.IsObject():
		e.Payload = decodeObject(root)
	case root.Type == gjson.String:
		e.Payload = TextPayload{Text: root.Str}
	}
	return e
}

func decodeObject(root gjson.Result) Payload {
	var message, errs gjson.Result
	root.ForEach(func(key, value gjson.Result) bool {
		switch key.Str {
		case "message":
			message = value
		case "errors":
			errs = value
		}
		return true
	})

	if message.Type == gjson.String && message.Str != "" {
		return MessagePayload{Message: message.Str}
	}
	if fields := orderedFields(errs); len(fields) > 0 {
		return FieldsPayload{Fields: fields}
	}
	return NoPayload{}
}

// orderedFields lists the members of an object in document order. A
// repeated key overwrites the earlier entry in its original position.
func orderedFields(obj gjson.Result) []FieldMessage {
	if !obj.IsObject() {
		return nil
	}
	var out []FieldMessage
	pos := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		fm := FieldMessage{Field: key.Str, Message: stringify(value)}
		if i, seen := pos[fm.Field]; seen {
			out[i] = fm
			return true
		}
		pos[fm.Field] = len(out)
		out = append(out, fm)
		return true
	})
	return out
}

// stringify renders a field value as text: strings verbatim, null as "",
// arrays as their comma-joined elements, anything else as its JSON text.
func stringify(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.Type == gjson.Null:
		return ""
	case v.IsArray():
		items := v.Array()
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, stringify(it))
		}
		return strings.Join(parts, ",")
	default:
		return strings.TrimSpace(v.Raw)
	}
}
