package sqlstore

import (
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// sortDocuments orders docs by a single field. Missing and null values sort
// before everything else, as they do in mongo.
func sortDocuments(docs []docstore.Document, order docstore.Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][order.Field], docs[j][order.Field])
		if order.Order == docstore.Descending {
			return c > 0
		}
		return c < 0
	})
}

// value classes in ascending order
const (
	classNull = iota
	classNumber
	classString
	classBool
	classTime
	classOther
)

func compareValues(a, b any) int {
	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return ca - cb
	}
	switch ca {
	case classNumber:
		return compareFloat(toFloat(a), toFloat(b))
	case classString:
		return strings.Compare(a.(string), b.(string))
	case classBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case classTime:
		ta, tb := toTime(a), toTime(b)
		return ta.Compare(tb)
	}
	return 0
}

func classOf(v any) int {
	switch v.(type) {
	case nil:
		return classNull
	case float64, float32, int, int32, int64:
		return classNumber
	case string:
		return classString
	case bool:
		return classBool
	case time.Time, bson.DateTime:
		return classTime
	}
	return classOther
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case bson.DateTime:
		return t.Time()
	}
	return time.Time{}
}
