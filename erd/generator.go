// ABOUTME: Deterministic corrected-ERD generator: rewrites DSL source to resolve fixable warnings.
// ABOUTME: Pure function of (model, warnings); everything a fix does not touch re-emits verbatim.
package erd

import (
	"fmt"
	"strings"
)

// GenerateCorrected regenerates DSL source from the model with the fixable
// warning categories resolved:
//
//   - every entity's primary key is renamed to the canonical "name", except on
//     junction tables, whose composite keys stay untouched
//   - non-primary attributes named "name" (naming_conflict) become
//     "{entity}_name"
//   - missing_foreign_key warnings append a string FK column to the many side
//   - many_to_many_relationship warnings synthesize a junction entity and two
//     one-to-many relationships replacing the original line
//
// Attribute types re-emit the preserved original token, never the canonical
// semantic type, so re-parsing the output cannot introduce warnings in
// categories the generator does not target. The generator never fails on a
// model Parse could produce.
func GenerateCorrected(m *Model, warnings []Warning) string {
	fixes := collectFixes(warnings)

	var b strings.Builder
	b.WriteString(diagramHeader + "\n")

	for _, e := range m.Entities {
		writeEntityBlock(&b, e, fixes)
	}

	for _, j := range fixes.junctions {
		writeJunctionBlock(&b, j)
	}

	for _, r := range m.Relationships {
		if r.Cardinality.Kind == ManyToMany {
			// Replaced by the junction decomposition below.
			continue
		}
		writeRelationship(&b, r.FromEntity, r.Symbols, r.ToEntity, r.Label)
	}

	for _, j := range fixes.junctions {
		writeRelationship(&b, j.FromEntity, "||--o{", j.JunctionName, "has")
		writeRelationship(&b, j.ToEntity, "||--o{", j.JunctionName, "has")
	}

	return b.String()
}

// foreignKeyAdd describes one column appended by a missing_foreign_key fix.
type foreignKeyAdd struct {
	ColumnName       string
	ReferencedEntity string
}

// junctionFix describes one junction entity synthesized from a many-to-many
// relationship.
type junctionFix struct {
	JunctionName string
	FromEntity   string
	ToEntity     string
}

// fixSet is the generator's working view of the warnings: which columns to
// rename, which to append, and which junction entities to synthesize.
type fixSet struct {
	renames   map[string]map[string]string // entity -> old column -> new column
	fkAdds    map[string][]foreignKeyAdd   // entity -> columns to append
	junctions []junctionFix                // in warning order
}

// collectFixes extracts the actionable fixData payloads from the warning list.
// Duplicate fixes for the same target are collapsed so two relationships
// expecting the same column append it once.
func collectFixes(warnings []Warning) fixSet {
	fixes := fixSet{
		renames: make(map[string]map[string]string),
		fkAdds:  make(map[string][]foreignKeyAdd),
	}
	seenFK := make(map[string]bool)
	seenJunction := make(map[string]bool)

	for _, w := range warnings {
		if w.FixData == nil {
			continue
		}
		switch w.Type {
		case WarnNamingConflict:
			ent := w.FixData.EntityName
			if fixes.renames[ent] == nil {
				fixes.renames[ent] = make(map[string]string)
			}
			fixes.renames[ent][w.FixData.ColumnName] = strings.ToLower(ent) + "_name"

		case WarnMissingForeignKey:
			key := w.FixData.EntityName + "\x00" + w.FixData.ColumnName
			if seenFK[key] {
				continue
			}
			seenFK[key] = true
			fixes.fkAdds[w.FixData.EntityName] = append(fixes.fkAdds[w.FixData.EntityName], foreignKeyAdd{
				ColumnName:       w.FixData.ColumnName,
				ReferencedEntity: w.FixData.ReferencedEntity,
			})

		case WarnManyToMany:
			if seenJunction[w.FixData.JunctionName] {
				continue
			}
			seenJunction[w.FixData.JunctionName] = true
			fixes.junctions = append(fixes.junctions, junctionFix{
				JunctionName: w.FixData.JunctionName,
				FromEntity:   w.FixData.FromEntity,
				ToEntity:     w.FixData.ToEntity,
			})
		}
	}

	return fixes
}

// writeEntityBlock emits one entity with renames and FK appends applied.
func writeEntityBlock(b *strings.Builder, e *Entity, fixes fixSet) {
	fmt.Fprintf(b, "    %s {\n", e.Name)

	junction := e.IsJunction()
	for _, a := range e.Attributes {
		name := a.Name
		if repl, ok := fixes.renames[e.Name][a.Name]; ok {
			name = repl
		}
		if a.IsPrimaryKey && !junction {
			name = "name"
		}
		fmt.Fprintf(b, "        %s\n", formatAttribute(a, name))
	}

	for _, add := range fixes.fkAdds[e.Name] {
		fmt.Fprintf(b, "        string %s FK \"Foreign key to %s\"\n",
			add.ColumnName, capitalize(add.ReferencedEntity))
	}

	b.WriteString("    }\n")
}

// writeJunctionBlock emits a synthesized junction entity: a surrogate string
// PK plus one FK column per side.
func writeJunctionBlock(b *strings.Builder, j junctionFix) {
	fmt.Fprintf(b, "    %s {\n", j.JunctionName)
	b.WriteString("        string id PK\n")
	fmt.Fprintf(b, "        string %s_id FK\n", strings.ToLower(j.FromEntity))
	fmt.Fprintf(b, "        string %s_id FK\n", strings.ToLower(j.ToEntity))
	b.WriteString("    }\n")
}

// writeRelationship emits one relationship line, quoting the label when present.
func writeRelationship(b *strings.Builder, from, symbols, to, label string) {
	if label != "" {
		fmt.Fprintf(b, "    %s %s %s : %q\n", from, symbols, to, label)
		return
	}
	fmt.Fprintf(b, "    %s %s %s\n", from, symbols, to)
}

// formatAttribute renders an attribute line using the preserved original type
// token and the (possibly renamed) attribute name. Constraint markers are
// regenerated from the parsed flags; NOT NULL is implied by PK and therefore
// only emitted for non-key required columns.
func formatAttribute(a *Attribute, name string) string {
	parts := []string{a.OriginalType, name}
	if a.IsPrimaryKey {
		parts = append(parts, "PK")
	}
	if a.IsForeignKey {
		parts = append(parts, "FK")
	}
	if a.IsUnique {
		parts = append(parts, "UK")
	}
	if a.IsRequired && !a.IsPrimaryKey {
		parts = append(parts, "NOT NULL")
	}
	if a.Description != "" {
		parts = append(parts, fmt.Sprintf("%q", a.Description))
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first rune of a name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
