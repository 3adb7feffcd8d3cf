// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/tokctl/internal/attrs"
	"github.com/tfctl/tokctl/internal/log"
)

// filterRegex splits an expression into key, optional operator (with optional
// negation) and target. "name" is key only, "name=" has an empty target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses spec. Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("TOKCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		// A bare key means "present and not empty".
		if operand == "" {
			negate, operand = true, "="
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the rows matching spec and projects each onto the
// columns in al, keyed by output key. Transforms are left to the caller.
func FilterDataset(rows []map[string]any, al attrs.AttrList, spec string) []map[string]any {
	filters := BuildFilters(spec)

	results := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if !applyFilters(row, al, filters) {
			continue
		}

		result := make(map[string]any, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			result[attr.OutputKey] = row[attr.Key]
		}
		results = append(results, result)
	}

	log.Debugf("filtered: %d of %d rows", len(results), len(rows))
	return results
}

// applyFilters reports whether row passes every filter. Filters naming an
// unknown column are reported and ignored.
func applyFilters(row map[string]any, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key, ok := al.Lookup(filter.Key)
		if !ok {
			if _, direct := row[filter.Key]; !direct {
				msg := fmt.Sprintf("filter key not found: %s", filter.Key)
				log.Errorf("%s", msg)
				fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
				continue
			}
			key = filter.Key
		}

		if !check(row[key], filter) {
			return false
		}
	}
	return true
}

// check evaluates one filter against value.
func check(value any, filter Filter) bool {
	switch v := value.(type) {
	case nil:
		return checkStringOperand("", filter)
	case string:
		return checkStringOperand(v, filter)
	case bool:
		return checkStringOperand(strconv.FormatBool(v), filter)
	case []any, map[string]any:
		if filter.Operand == "@" {
			return checkContainsOperand(v, filter)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return false
		}
		return checkStringOperand(string(b), filter)
	}

	if num, ok := toFloat64(value); ok {
		if _, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64); err == nil {
			return checkNumericOperand(num, filter)
		}
		return checkStringOperand(strconv.FormatFloat(num, 'f', -1, 64), filter)
	}

	return checkStringOperand(fmt.Sprintf("%v", value), filter)
}

// checkContainsOperand tests membership in a list or object.
func checkContainsOperand(value any, filter Filter) bool {
	found := false
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == filter.Value {
				found = true
				break
			}
		}
	case map[string]any:
		_, found = val[filter.Value]
	}
	return found != filter.Negate
}

// checkNumericOperand compares numerically. Prefix, regex and contains fall
// back to the number's string form.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=", "~":
		return (value == tgt) != filter.Negate
	case ">":
		return (value > tgt) != filter.Negate
	case "<":
		return (value < tgt) != filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand compares value with the filter target as strings.
func checkStringOperand(value string, filter Filter) bool {
	var result bool
	switch filter.Operand {
	case "=":
		result = value == filter.Value
	case "~":
		result = strings.EqualFold(value, filter.Value)
	case "^":
		result = strings.HasPrefix(value, filter.Value)
	case ">":
		result = value > filter.Value
	case "<":
		result = value < filter.Value
	case "@":
		result = strings.Contains(value, filter.Value)
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		result = matched
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
	return result != filter.Negate
}

// toFloat64 normalizes the numeric types rows can carry.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
