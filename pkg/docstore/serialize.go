package docstore

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// WireRecord is the JSON-safe form of a stored document.
type WireRecord map[string]any

// Naive UTC ISO-8601, fractional part only when sub-second precision exists.
const (
	isoLayout       = "2006-01-02T15:04:05"
	isoLayoutMicros = "2006-01-02T15:04:05.000000"
)

// Serialize renames _id to id (as a hex string) and renders time values as
// ISO-8601 strings. Other values pass through untouched. The input is not
// modified and Serialize(nil) is nil.
func Serialize(doc Document) WireRecord {
	if doc == nil {
		return nil
	}
	out := make(WireRecord, len(doc))
	for k, v := range doc {
		if k == IDField {
			out["id"] = idString(v)
			continue
		}
		out[k] = wireValue(v)
	}
	return out
}

// SerializeAll serializes each document, never returning nil.
func SerializeAll(docs []Document) []WireRecord {
	out := make([]WireRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Serialize(doc))
	}
	return out
}

// FormatTime renders t the way Serialize renders stored timestamps.
func FormatTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoLayoutMicros)
}

func idString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func wireValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return FormatTime(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return FormatTime(*t)
	case bson.DateTime:
		return FormatTime(t.Time())
	default:
		return v
	}
}
