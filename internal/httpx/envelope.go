package httpx

import "encoding/json"

// The backends disagree on how they wrap list responses: a bare array,
// {data: [...]}, a paginated {success, data: {data: [...], meta}} or a
// named plural field like {chambres: [...]}.  Items flattens all of them
// with a fixed precedence so no view code ever sniffs shapes itself.

// Items extracts the element list from a raw response body.  Precedence:
// the body itself, then body.data, then body.data.data, then body[plural].
// Anything unrecognized yields an empty slice; a missing list is "no
// data", never an error.
func Items(raw json.RawMessage, plural string) []json.RawMessage {
	if items, ok := asArray(raw); ok {
		return items
	}
	fields, ok := asObject(raw)
	if !ok {
		return nil
	}
	if data, present := fields["data"]; present {
		if items, ok := asArray(data); ok {
			return items
		}
		if inner, ok := asObject(data); ok {
			if items, ok := asArray(inner["data"]); ok {
				return items
			}
		}
	}
	if plural != "" {
		if items, ok := asArray(fields[plural]); ok {
			return items
		}
	}
	return nil
}

// DecodeList runs Items and unmarshals each element into T.  Shape
// mismatches at the envelope level yield an empty list; a malformed
// element is a real decode error and is returned.
func DecodeList[T any](raw json.RawMessage, plural string) ([]T, error) {
	items := Items(raw, plural)
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Object unwraps a single-resource envelope: if the body is {data: {...}}
// the inner object is returned, otherwise the body itself.  Detail
// endpoints answer in both shapes depending on the service.
func Object(raw json.RawMessage) json.RawMessage {
	fields, ok := asObject(raw)
	if !ok {
		return raw
	}
	if data, present := fields["data"]; present {
		if _, ok := asObject(data); ok {
			return data
		}
	}
	return raw
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}
