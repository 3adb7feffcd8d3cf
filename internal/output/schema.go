// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/tokctl/internal/log"
)

// schemaTag is a jsonapi struct tag reduced to what --schema shows.
type schemaTag struct {
	Kind string
	Name string
}

// NewTag parses a jsonapi tag value. Only primary and attr tags are kept; the
// primary key is always exposed as "id".
func NewTag(s string) schemaTag {
	parts := strings.Split(s, ",")
	switch {
	case parts[0] == "primary":
		return schemaTag{Kind: "primary", Name: "id"}
	case parts[0] == "attr" && len(parts) > 1:
		return schemaTag{Kind: "attr", Name: parts[1]}
	}
	return schemaTag{}
}

// DumpSchema writes the sorted column names available to --attrs for typ,
// which must be a struct carrying jsonapi or json tags. If w is nil, os.Stdout is
// used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	fmt.Fprintln(w, "Columns available to the --attrs, --filter and --sort flags.")
	fmt.Fprintln(w, "")

	names := SchemaNames(typ)
	if len(names) == 0 {
		log.Debugf("no column tags found for type: %s", typ.Name())
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// SchemaNames lists the column names of typ, sorted. jsonapi tags win; plain
// json tags name the columns of rows that are not JSON:API resources.
func SchemaNames(typ reflect.Type) []string {
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if tagValue, ok := field.Tag.Lookup("jsonapi"); ok {
			if tag := NewTag(tagValue); tag.Kind != "" {
				names = append(names, tag.Name)
			}
			continue
		}
		if tagValue, ok := field.Tag.Lookup("json"); ok {
			if name, _, _ := strings.Cut(tagValue, ","); name != "" && name != "-" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
