// ABOUTME: Renders a validation report for a parse result as Markdown, optionally converted to HTML.
// ABOUTME: The wizard serves these from the report endpoint; the CLI prints the Markdown form.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/yuin/goldmark"
)

// Markdown renders the result as a human-readable Markdown report: the
// overall verdict, an entity/relationship inventory, and warnings grouped by
// severity in validator emission order.
func Markdown(res *erd.Result) string {
	var b strings.Builder

	b.WriteString("# Schema validation report\n\n")
	fmt.Fprintf(&b, "**Status:** %s — %d errors, %d warnings, %d info\n\n",
		res.Validation.Status,
		res.Validation.ErrorCount,
		res.Validation.WarningCount,
		res.Validation.InfoCount,
	)

	b.WriteString("## Entities\n\n")
	if len(res.Entities) == 0 {
		b.WriteString("_No entities declared._\n\n")
	}
	for _, e := range res.Entities {
		fmt.Fprintf(&b, "### %s (%d attributes)\n\n", e.Name, len(e.Attributes))
		for _, a := range e.Attributes {
			var marks []string
			if a.IsPrimaryKey {
				marks = append(marks, "PK")
			}
			if a.IsForeignKey {
				marks = append(marks, "FK")
			}
			if a.IsUnique {
				marks = append(marks, "UK")
			}
			line := fmt.Sprintf("- `%s` %s", a.Name, a.Type)
			if len(marks) > 0 {
				line += " (" + strings.Join(marks, ", ") + ")"
			}
			if a.Description != "" {
				line += " — " + a.Description
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(res.Relationships) > 0 {
		b.WriteString("## Relationships\n\n")
		for _, r := range res.Relationships {
			fmt.Fprintf(&b, "- %s → %s (%s, %q)\n", r.FromEntity, r.ToEntity, r.Cardinality.Kind, r.Name)
		}
		b.WriteString("\n")
	}

	writeWarningSection(&b, res.Warnings, erd.SeverityError, "Errors")
	writeWarningSection(&b, res.Warnings, erd.SeverityWarning, "Warnings")
	writeWarningSection(&b, res.Warnings, erd.SeverityInfo, "Info")

	return b.String()
}

// writeWarningSection emits one severity group, skipping empty groups.
func writeWarningSection(b *strings.Builder, warns []erd.Warning, severity, heading string) {
	var group []erd.Warning
	for _, w := range warns {
		if w.Severity == severity {
			group = append(group, w)
		}
	}
	if len(group) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, w := range group {
		target := w.Entity
		if target == "" {
			target = w.Relationship
		}
		fmt.Fprintf(b, "- **%s**", w.Type)
		if target != "" {
			fmt.Fprintf(b, " (%s)", target)
		}
		fmt.Fprintf(b, ": %s", w.Message)
		if w.Suggestion != "" {
			fmt.Fprintf(b, " _%s._", strings.TrimSuffix(w.Suggestion, "."))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// HTML renders the Markdown report to HTML using goldmark. On conversion
// failure the escaped Markdown is returned so the endpoint always has a body.
func HTML(res *erd.Result) string {
	md := Markdown(res)
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return buf.String()
}
