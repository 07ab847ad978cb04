package mongostore

import (
	"fmt"
	"regexp"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// matchNothing is the query form of an empty Or.
var matchNothing = bson.D{{Key: "$nor", Value: bson.A{bson.D{}}}}

// Translate converts a docstore filter into a mongo query document.
func Translate(filter docstore.Filter) (bson.D, error) {
	switch f := filter.(type) {
	case nil, docstore.All:
		return bson.D{}, nil
	case docstore.Eq:
		return bson.D{{Key: f.Field, Value: f.Value}}, nil
	case docstore.Contains:
		if f.Term == "" {
			return bson.D{}, nil
		}
		return bson.D{{Key: f.Field, Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(f.Term)},
			{Key: "$options", Value: "i"},
		}}}, nil
	case docstore.And:
		clauses, err := translateAll(f)
		if err != nil {
			return nil, err
		}
		switch len(clauses) {
		case 0:
			return bson.D{}, nil
		case 1:
			return clauses[0].(bson.D), nil
		}
		return bson.D{{Key: "$and", Value: clauses}}, nil
	case docstore.Or:
		if len(f) == 0 {
			return matchNothing, nil
		}
		clauses := make(bson.A, 0, len(f))
		for _, clause := range f {
			q, err := Translate(clause)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, q)
		}
		return bson.D{{Key: "$or", Value: clauses}}, nil
	}
	return nil, fmt.Errorf("mongostore: unsupported filter %T", filter)
}

// translateAll drops clauses that place no constraint.
func translateAll(filters []docstore.Filter) (bson.A, error) {
	out := make(bson.A, 0, len(filters))
	for _, clause := range filters {
		q, err := Translate(clause)
		if err != nil {
			return nil, err
		}
		if len(q) == 0 {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}
