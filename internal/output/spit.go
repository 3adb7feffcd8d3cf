// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/tokctl/internal/attrs"
	"github.com/tfctl/tokctl/internal/config"
	"github.com/tfctl/tokctl/internal/filters"
	"github.com/tfctl/tokctl/internal/log"
)

// InterfaceToString converts primitive or composite values to a string. A
// custom empty value may be provided.
func InterfaceToString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		if rv := reflect.ValueOf(value); (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.Len() == 0 {
			return emptyValue[0]
		}
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Rows parses raw JSON into output rows. When parent is set only that member
// of the document is used. JSON:API resource objects are flattened so their
// id and attributes sit side by side.
func Rows(raw []byte, parent string) []map[string]any {
	doc := gjson.ParseBytes(raw)
	if parent != "" {
		doc = doc.Get(parent)
	}

	elems := doc.Array()
	rows := make([]map[string]any, 0, len(elems))
	for _, elem := range elems {
		row := map[string]any{}
		if a := elem.Get("attributes"); a.IsObject() {
			for k, v := range a.Map() {
				row[k] = v.Value()
			}
			row["id"] = elem.Get("id").Value()
		} else {
			for k, v := range elem.Map() {
				row[k] = v.Value()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// SliceDiceSpit filters, transforms, sorts and renders raw according to the
// command's output flags.
func SliceDiceSpit(raw bytes.Buffer,
	al attrs.AttrList,
	cmd *cli.Command,
	parent string,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	// Raw output is the payload exactly as the command built it.
	output := cmd.String("output")
	if output == "raw" {
		_, _ = w.Write(raw.Bytes())
		return
	}

	rows := Rows(raw.Bytes(), parent)
	filtered := filters.FilterDataset(rows, al, cmd.String("filter"))

	// --local rewrites RFC3339 strings left after the column transforms.
	// Numbers are left alone since counts would read as epoch millis.
	local := cmd.Bool("local")
	localAttr := attrs.Attr{TransformSpec: "t"}

	for _, row := range filtered {
		for _, attr := range al {
			v := row[attr.OutputKey]
			if attr.TransformSpec != "" {
				v = attr.Transform(v)
			}
			if s, ok := v.(string); ok && local {
				v = localAttr.Transform(s)
			}
			row[attr.OutputKey] = v
		}
	}

	SortDataset(filtered, cmd.String("sort"))

	// Structured output carries only the emitted columns.
	emitted := al.Included()
	shaped := make([]map[string]any, 0, len(filtered))
	for _, row := range filtered {
		out := make(map[string]any, len(emitted))
		for _, attr := range emitted {
			out[attr.OutputKey] = row[attr.OutputKey]
		}
		shaped = append(shaped, out)
	}

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(shaped)
		if err != nil {
			log.Errorf("SliceDiceSpit json marshal: %v", err)
			return
		}
		fmt.Fprintln(w, string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(shaped)
		if err != nil {
			log.Errorf("SliceDiceSpit yaml marshal: %v", err)
			return
		}
		_, _ = w.Write(yamlOutput)
	default:
		TableWriter(filtered, al, cmd, w)
	}
}

// TableWriter renders rows as a borderless table honoring the color and
// titles flags. Header and footer lines come from the command's metadata.
func TableWriter(
	resultSet []map[string]any,
	al attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	} else {
		headerStyle = headerStyle.Bold(false)
	}

	if h, ok := cmd.Metadata["header"].(string); ok && h != "" {
		fmt.Fprintln(w, headerStyle.Render(h))
	}

	if len(resultSet) > 0 {
		var rows [][]string
		for _, result := range resultSet {
			row := make([]string, 0, len(al))
			for _, attr := range al {
				if !attr.Include {
					continue
				}
				row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
			}
			rows = append(rows, row)
		}

		pad, _ := config.GetInt("padding", 2) //nolint:mnd
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if cmd.Bool("titles") {
			var headers []string
			for _, attr := range al {
				if attr.Include {
					headers = append(headers, attr.OutputKey)
				}
			}

			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if f, ok := cmd.Metadata["footer"].(string); ok && f != "" {
		fmt.Fprintln(w, headerStyle.Render(f))
	}
}

// getColors returns the table colors. Explicit config values win; otherwise
// a default suited to the terminal background is used.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil && colorCfg != "" {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
