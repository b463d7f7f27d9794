package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/earcherc/realfoodfinder/pkg/e"
)

func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// OptionalString returns nil when s is empty after trimming.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// TrimList trims every entry and drops the empty ones.
func TrimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// NormalizeList trims, drops empties and removes case-insensitive
// duplicates. The first spelling seen wins and order is kept.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CoerceFloat turns a decoded JSON value or a string into a finite float64.
func CoerceFloat(field string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, e.NewValidationError(field, fmt.Sprintf("%s must be a number.", field))
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, e.NewValidationError(field, fmt.Sprintf("%s must be a number.", field))
		}
		f = parsed
	default:
		return 0, e.NewValidationError(field, fmt.Sprintf("%s must be a number.", field))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, e.NewValidationError(field, fmt.Sprintf("%s must be a finite number.", field))
	}
	return f, nil
}

// CoercePositiveInt parses form input such as an admin "id" field.
func CoercePositiveInt(field, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, e.NewValidationError(field, fmt.Sprintf("Invalid %s.", field))
	}
	return n, nil
}
