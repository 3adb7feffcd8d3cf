// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokens

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tidwall/gjson"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/tokctl/internal/log"
)

// valueKey marks a leaf in W3C design-token style documents, where
// {"primary": {"$value": "#fff", "$type": "color"}} is the token
// color.primary = "#fff".
const valueKey = "$value"

// DiscoverPatterns are the globs tried by Discover when no explicit pattern is
// given.
var DiscoverPatterns = []string{
	"**/tokens.{json,yaml,yml,hcl}",
	"**/*.tokens.{json,yaml,yml,hcl}",
	"**/design-tokens.{json,yaml,yml,hcl}",
}

// Load reads a token file, picking the parser from the extension. Nested
// groups are flattened into dot-delimited keys.
func Load(path string) (TokenMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var m TokenMap
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	case ".hcl":
		m, err = ParseHCL(data, path)
	default:
		m, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("tokens loaded: path=%s count=%d", path, len(m))
	return m, nil
}

// ParseJSON flattens a JSON object document into a TokenMap.
func ParseJSON(data []byte) (TokenMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("token document must be a JSON object")
	}

	m := TokenMap{}
	flattenJSON(m, "", doc)
	return m, nil
}

func flattenJSON(m TokenMap, prefix string, node gjson.Result) {
	node.ForEach(func(key, value gjson.Result) bool {
		path := join(prefix, key.String())
		switch {
		case value.IsObject() && value.Get(gjson.Escape(valueKey)).Exists():
			m[path] = normalize(value.Get(gjson.Escape(valueKey)).Value())
		case value.IsObject():
			flattenJSON(m, path, value)
		default:
			m[path] = normalize(value.Value())
		}
		return true
	})
}

// ParseYAML flattens a YAML mapping document into a TokenMap.
func ParseYAML(data []byte) (TokenMap, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	m := TokenMap{}
	flattenMap(m, "", doc)
	return m, nil
}

func flattenMap(m TokenMap, prefix string, node map[string]any) {
	for key, value := range node {
		path := join(prefix, key)
		child, isMap := value.(map[string]any)
		switch {
		case isMap && hasKey(child, valueKey):
			m[path] = normalize(child[valueKey])
		case isMap:
			flattenMap(m, path, child)
		default:
			m[path] = normalize(value)
		}
	}
}

// ParseHCL reads attributes and blocks from an HCL document. Blocks nest keys
// by type and labels, so
//
//	color "brand" {
//	  primary = "#0055ff"
//	}
//
// yields color.brand.primary. Attribute expressions may use a handful of
// string and numeric functions.
func ParseHCL(data []byte, filename string) (TokenMap, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid HCL: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}

	ctx := &hcl.EvalContext{
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
		},
	}

	m := TokenMap{}
	if err := flattenHCL(m, "", body, ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func flattenHCL(m TokenMap, prefix string, body *hclsyntax.Body, ctx *hcl.EvalContext) error {
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return fmt.Errorf("invalid HCL attribute %s: %s", join(prefix, name), diags.Error())
		}
		m[join(prefix, name)] = ctyToGo(val)
	}

	for _, block := range body.Blocks {
		path := join(prefix, block.Type)
		for _, label := range block.Labels {
			path = join(path, label)
		}
		if err := flattenHCL(m, path, block.Body, ctx); err != nil {
			return err
		}
	}
	return nil
}

// ctyToGo converts a cty value into the plain shapes a TokenMap holds.
func ctyToGo(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	case ty == cty.Bool:
		return v.True()
	case ty.IsObjectType() || ty.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			out[k.AsString()] = ctyToGo(ev)
		}
		return out
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyToGo(ev))
		}
		return out
	}
	return nil
}

// Discover walks root and returns token files matching pattern, or any of
// DiscoverPatterns when pattern is empty. Results are sorted and absolute
// when root is.
func Discover(root string, pattern string) ([]string, error) {
	patterns := DiscoverPatterns
	if pattern != "" {
		patterns = []string{pattern}
	}

	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		for _, rel := range matches {
			if strings.Contains(rel, "node_modules/") || seen[rel] {
				continue
			}
			seen[rel] = true
			files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(files)

	log.Debugf("discovered token files: root=%s count=%d", root, len(files))
	return files, nil
}

// NameFromPath derives a project name from a token file path by stripping
// directories and token-ish suffixes: "web/brand.tokens.json" gives "brand".
// Generic file names fall back to the parent directory name.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".tokens")

	switch base {
	case "tokens", "design-tokens":
		if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
			return dir
		}
	}
	return base
}

func normalize(v any) any {
	c, ok := cloneValue(v)
	if !ok {
		return nil
	}
	return c
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
