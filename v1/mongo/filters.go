package mongo

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Eq builds the single-field equality filter {field: value}.
func Eq(field string, value any) (bson.D, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	return bson.D{{Key: field, Value: value}}, nil
}

// AllOf builds the conjunction of equality predicates in params.
// Keys are sorted so the same map always yields the same filter document.
// An empty map matches every document.
func AllOf(params map[string]any) (bson.D, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		if err := checkField(k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filter := make(bson.D, 0, len(keys))
	for _, k := range keys {
		filter = append(filter, bson.E{Key: k, Value: params[k]})
	}
	return filter, nil
}

// AnyContains builds a filter matching documents where at least one of fields
// contains substring, ignoring case. The substring is matched literally.
// Repeated field names produce a single clause.
func AnyContains(fields []string, substring string) (bson.D, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to match", ErrInvalidFilter)
	}

	pattern := regexp.QuoteMeta(substring)
	seen := make(map[string]struct{}, len(fields))
	clauses := make(bson.A, 0, len(fields))
	for _, f := range fields {
		if err := checkField(f); err != nil {
			return nil, err
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		clauses = append(clauses, bson.D{{Key: f, Value: bson.D{
			{Key: "$regex", Value: pattern},
			{Key: "$options", Value: "i"},
		}}})
	}
	return bson.D{{Key: "$or", Value: clauses}}, nil
}

func checkField(field string) error {
	if field == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidFilter)
	}
	if strings.HasPrefix(field, "$") {
		return fmt.Errorf("%w: field %q must not start with '$'", ErrInvalidFilter, field)
	}
	return nil
}
