// Package render formats evaluation results for people and for pasting into
// package documents.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/accessmodes/internal/accessmode"
)

// Format selects an output rendering.
type Format string

const (
	FormatList Format = "list"
	FormatMeta Format = "meta"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	// MsgNoContent is shown when no content format is selected.
	MsgNoContent = "Select at least one content format type."
	// MsgNoSufficient is shown when no mode combination suffices.
	MsgNoSufficient = "No sufficient combinations found."
)

const metaProperty = "schema:accessModeSufficient"

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatList, FormatMeta, FormatJSON, FormatYAML}
}

// ParseFormat resolves a format name.
func ParseFormat(value string) (Format, error) {
	candidate := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, f := range Formats() {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", value)
}

// ListLiteral renders one quoted list literal per line, e.g.
// ["textual", "visual"].
func ListLiteral(sets []accessmode.ModeSet) string {
	lines := make([]string, len(sets))
	for i, set := range sets {
		names := set.Strings()
		quoted := make([]string, len(names))
		for j, name := range names {
			quoted[j] = fmt.Sprintf("%q", name)
		}
		lines[i] = "[" + strings.Join(quoted, ", ") + "]"
	}
	return strings.Join(lines, "\n")
}

// MetaTags renders one schema:accessModeSufficient meta element per line.
func MetaTags(sets []accessmode.ModeSet) string {
	lines := make([]string, len(sets))
	for i, set := range sets {
		lines[i] = fmt.Sprintf("<meta property=%q>%s</meta>", metaProperty, set.String())
	}
	return strings.Join(lines, "\n")
}

// Render formats an evaluation. The text formats fall back to an explanatory
// message when there is nothing to show; the structured formats render an
// empty list.
func Render(format Format, eval accessmode.Evaluation) (string, error) {
	switch format {
	case FormatList, FormatMeta:
		if msg, ok := EmptyMessage(eval); ok {
			return msg, nil
		}
		if format == FormatList {
			return ListLiteral(eval.Sets), nil
		}
		return MetaTags(eval.Sets), nil
	case FormatJSON:
		data, err := json.Marshal(names(eval.Sets))
		if err != nil {
			return "", fmt.Errorf("render: json: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(names(eval.Sets))
		if err != nil {
			return "", fmt.Errorf("render: yaml: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("render: unknown format %q", format)
	}
}

// EmptyMessage returns the message to show instead of results, if any.
func EmptyMessage(eval accessmode.Evaluation) (string, bool) {
	if eval.Content.IsEmpty() {
		return MsgNoContent, true
	}
	if eval.IsEmpty() {
		return MsgNoSufficient, true
	}
	return "", false
}

func names(sets []accessmode.ModeSet) [][]string {
	out := make([][]string, 0, len(sets))
	for _, set := range sets {
		out = append(out, set.Strings())
	}
	return out
}
