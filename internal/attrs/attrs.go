// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/tokctl/internal/log"
)

// localTimeLayout is how the t transform renders timestamps.
const localTimeLayout = "2006-01-02T15:04:05MST"

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one output column.
type Attr struct {
	// Key is the row field the column reads.
	Key string `yaml:"key" json:"Key"`
	// Include is false for columns used only to filter or sort.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey is the column name in output and the name filters refer to.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is applied to the value before it is emitted.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the column's transform spec to value. Timestamps may be
// RFC3339 strings or unix milliseconds. Structured values pass through.
func (a *Attr) Transform(value any) any {
	if a.TransformSpec == "" {
		return value
	}

	result, ok := a.timeTransform(value)
	if !ok {
		s, isString := value.(string)
		if !isString {
			log.Tracef("untransformable value: key=%s value=%v", a.Key, value)
			return value
		}
		result = s
	}

	result = a.caseTransform(result)
	return a.lengthTransform(result)
}

// timeTransform renders value as a time when the spec asks for it and value
// looks like one.
func (a *Attr) timeTransform(value any) (string, bool) {
	if !strings.ContainsAny(a.TransformSpec, "tT") {
		return "", false
	}

	var t time.Time
	switch v := value.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", false
		}
		t = parsed
	case float64:
		t = time.UnixMilli(int64(v))
	case int64:
		t = time.UnixMilli(v)
	default:
		return "", false
	}

	local := t.In(time.Now().Location())
	if strings.Contains(a.TransformSpec, "T") {
		return humanize.Time(local), true
	}
	return local.Format(localTimeLayout), true
}

// caseTransform applies the last case letter in the spec, so a column's own
// transform overrides a global one prepended to it.
func (a *Attr) caseTransform(s string) string {
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	switch {
	case lastL > lastU:
		return strings.ToLower(s)
	case lastU > lastL:
		return strings.ToUpper(s)
	}
	return s
}

// lengthTransform applies the last length in the spec. Negative lengths keep
// both ends and elide the middle.
func (a *Attr) lengthTransform(s string) string {
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return s
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(s) <= abs {
		return s
	}

	if l >= 0 {
		return s[:l]
	}

	side := (abs - 2) / 2
	if side < 1 {
		return s[:abs]
	}
	return s[:side] + ".." + s[len(s)-side:]
}

// AttrList is the ordered set of output columns.
type AttrList []Attr

// Set parses an --attrs spec and merges it into the list. Entries naming an
// existing column update it in place; new entries are appended.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr, err := parseSpec(spec)
		if err != nil {
			return err
		}
		log.Tracef("attr parsed: %+v", attr)

		if i := a.index(attr.Key); i >= 0 {
			(*a)[i].Include = attr.Include
			(*a)[i].OutputKey = attr.OutputKey
			(*a)[i].TransformSpec = attr.TransformSpec
			continue
		}
		*a = append(*a, attr)
	}

	return nil
}

func parseSpec(spec string) (Attr, error) {
	fields := strings.Split(spec, ":")
	if len(fields) > 3 {
		return Attr{}, fmt.Errorf("invalid attrs spec %q: expected key:output:transform", spec)
	}

	attr := Attr{Include: true}
	attr.Key = strings.TrimSpace(fields[0])
	if strings.HasPrefix(attr.Key, "!") {
		attr.Include = false
		attr.Key = attr.Key[1:]
	}
	if attr.Key == "" {
		return Attr{}, fmt.Errorf("invalid attrs spec %q: empty key", spec)
	}
	if attr.Key == "*" {
		attr.Include = false
	}

	attr.OutputKey = attr.Key
	if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
		attr.OutputKey = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		attr.TransformSpec = strings.TrimSpace(fields[2])
	}

	return attr, nil
}

// index finds a column by key or output key.
func (a AttrList) index(key string) int {
	for i := range a {
		if a[i].Key == key || a[i].OutputKey == key {
			return i
		}
	}
	return -1
}

// SetGlobalTransformSpec prepends the * entry's transform, if any, to every
// column.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global transform applied: spec=%s", spec)
}

// Lookup returns the row key behind an output key.
func (a AttrList) Lookup(outputKey string) (string, bool) {
	for _, attr := range a {
		if attr.OutputKey == outputKey {
			return attr.Key, true
		}
	}
	return "", false
}

// Included returns the columns that are emitted.
func (a AttrList) Included() AttrList {
	out := AttrList{}
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// String renders the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}
