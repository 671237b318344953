// ABOUTME: Validation rule engine: ordered passes over a parsed Model producing Warnings.
// ABOUTME: Runs once on the completed model; several rules need the full entity set to be known.
package validator

import (
	"fmt"
	"strings"

	"github.com/erdsmith/erdsmith/erd"
)

// Validate runs all validation passes on the model and returns the warnings in
// a fixed order: per-entity structure, per-entity naming, relationships, CDM
// detection. The pass order affects only the sequence of emitted warnings,
// never which warnings are produced. Validate never mutates the model.
func Validate(m *erd.Model) []erd.Warning {
	var warns []erd.Warning

	warns = append(warns, checkEntityStructure(m)...)
	warns = append(warns, checkNaming(m)...)
	warns = append(warns, checkRelationships(m)...)
	warns = append(warns, checkCDM(m)...)

	return warns
}

// Run parses nothing and provisions nothing: it validates the model and
// assembles the complete result structure the wizard and the provisioning
// orchestrator consume.
func Run(m *erd.Model) *erd.Result {
	warns := Validate(m)
	if warns == nil {
		warns = []erd.Warning{}
	}
	return &erd.Result{
		Entities:      m.Entities,
		Relationships: m.Relationships,
		Warnings:      warns,
		Validation:    erd.Summarize(warns),
	}
}

// checkEntityStructure verifies primary-key counts, duplicate attribute names,
// and non-empty attribute lists for every entity.
func checkEntityStructure(m *erd.Model) []erd.Warning {
	var warns []erd.Warning

	for _, e := range m.Entities {
		pks := e.PrimaryKeys()

		switch {
		case len(pks) == 0:
			warns = append(warns, erd.Warning{
				Type:       erd.WarnMissingPrimaryKey,
				Severity:   erd.SeverityError,
				Entity:     e.Name,
				Message:    fmt.Sprintf("entity %q has no primary key attribute", e.Name),
				Suggestion: "mark exactly one attribute with PK, e.g. \"string id PK\"",
				Category:   erd.CategoryStructure,
			})
		case len(pks) > 1:
			names := make([]string, len(pks))
			for i, a := range pks {
				names[i] = a.Name
			}
			warns = append(warns, erd.Warning{
				Type:       erd.WarnMultiplePrimaryKeys,
				Severity:   erd.SeverityError,
				Entity:     e.Name,
				Message:    fmt.Sprintf("entity %q has %d primary key attributes: %s", e.Name, len(pks), strings.Join(names, ", ")),
				Suggestion: "keep a single PK, or mark the extra keys FK as well to model a junction table",
				Category:   erd.CategoryStructure,
				FixData:    &erd.FixData{EntityName: e.Name, Columns: names},
			})
		}

		if dups := duplicateAttributeNames(e); len(dups) > 0 {
			warns = append(warns, erd.Warning{
				Type:       erd.WarnDuplicateColumns,
				Severity:   erd.SeverityError,
				Entity:     e.Name,
				Message:    fmt.Sprintf("entity %q declares duplicate attribute names: %s", e.Name, strings.Join(dups, ", ")),
				Suggestion: "attribute names must be unique within an entity, ignoring case",
				Category:   erd.CategoryStructure,
				FixData:    &erd.FixData{EntityName: e.Name, Columns: dups},
			})
		}

		if len(e.Attributes) == 0 {
			warns = append(warns, erd.Warning{
				Type:       erd.WarnEmptyEntity,
				Severity:   erd.SeverityWarning,
				Entity:     e.Name,
				Message:    fmt.Sprintf("entity %q has no attributes", e.Name),
				Suggestion: "add at least a primary key attribute or remove the entity",
				Category:   erd.CategoryStructure,
			})
		}
	}

	return warns
}

// duplicateAttributeNames returns the attribute names declared more than once
// in the entity, compared case-insensitively, in first-occurrence order.
func duplicateAttributeNames(e *erd.Entity) []string {
	counts := make(map[string]int)
	for _, a := range e.Attributes {
		counts[strings.ToLower(a.Name)]++
	}
	var dups []string
	seen := make(map[string]bool)
	for _, a := range e.Attributes {
		key := strings.ToLower(a.Name)
		if counts[key] > 1 && !seen[key] {
			seen[key] = true
			dups = append(dups, a.Name)
		}
	}
	return dups
}

// checkNaming flags user columns that collide with the platform's
// auto-generated primary name column or with system columns.
func checkNaming(m *erd.Model) []erd.Warning {
	var warns []erd.Warning

	for _, e := range m.Entities {
		for _, a := range e.Attributes {
			if !a.IsPrimaryKey && strings.EqualFold(a.Name, "name") {
				warns = append(warns, erd.Warning{
					Type:       erd.WarnNamingConflict,
					Severity:   erd.SeverityWarning,
					Entity:     e.Name,
					Message:    fmt.Sprintf("entity %q has a non-primary attribute named %q; the platform auto-generates a primary name column", e.Name, a.Name),
					Suggestion: fmt.Sprintf("rename the attribute to %q", strings.ToLower(e.Name)+"_name"),
					Category:   erd.CategoryNaming,
					FixData:    &erd.FixData{EntityName: e.Name, ColumnName: a.Name},
				})
			}
			if systemColumns[strings.ToLower(a.Name)] {
				warns = append(warns, erd.Warning{
					Type:       erd.WarnSystemColumnConflict,
					Severity:   erd.SeverityWarning,
					Entity:     e.Name,
					Message:    fmt.Sprintf("attribute %q on entity %q collides with a system column", a.Name, e.Name),
					Suggestion: "rename the attribute; the platform manages this column automatically",
					Category:   erd.CategoryNaming,
				})
			}
		}
	}

	return warns
}

// checkRelationships validates each relationship in source order: entity
// existence, many-to-many decomposition, self references, and the expected
// foreign-key column on the many side.
func checkRelationships(m *erd.Model) []erd.Warning {
	var warns []erd.Warning

	for _, r := range m.Relationships {
		for _, side := range []string{r.FromEntity, r.ToEntity} {
			if m.FindEntity(side) == nil {
				warns = append(warns, erd.Warning{
					Type:         erd.WarnMissingEntity,
					Severity:     erd.SeverityError,
					Relationship: r.Name,
					Message:      fmt.Sprintf("relationship %q references undeclared entity %q", r.Name, side),
					Suggestion:   fmt.Sprintf("declare entity %q or correct the relationship", side),
					Category:     erd.CategoryRelationships,
				})
			}
		}

		if r.Cardinality.Kind == erd.ManyToMany {
			junction := r.FromEntity + r.ToEntity
			warns = append(warns, erd.Warning{
				Type:         erd.WarnManyToMany,
				Severity:     erd.SeverityError,
				Relationship: r.Name,
				Message:      fmt.Sprintf("relationship %q is many-to-many; the platform requires an intersection entity", r.Name),
				Suggestion:   fmt.Sprintf("decompose into entity %q with two one-to-many relationships", junction),
				Category:     erd.CategoryRelationships,
				FixData: &erd.FixData{
					JunctionName: junction,
					FromEntity:   r.FromEntity,
					ToEntity:     r.ToEntity,
				},
			})
		}

		if r.FromEntity == r.ToEntity {
			warns = append(warns, erd.Warning{
				Type:         erd.WarnSelfReferencing,
				Severity:     erd.SeverityWarning,
				Relationship: r.Name,
				Message:      fmt.Sprintf("relationship %q references entity %q on both sides", r.Name, r.FromEntity),
				Suggestion:   "self references are allowed but often indicate a modeling mistake",
				Category:     erd.CategoryRelationships,
			})
		}

		warns = append(warns, checkForeignKey(m, r)...)
	}

	return warns
}

// checkForeignKey expects the many side of a one-to-many or zero-to-many
// relationship to carry a column named "{from}_id" (lowercased).
func checkForeignKey(m *erd.Model, r *erd.Relationship) []erd.Warning {
	if r.Cardinality.Kind != erd.OneToMany && r.Cardinality.Kind != erd.ZeroToMany {
		return nil
	}
	target := m.FindEntity(r.ToEntity)
	if target == nil || m.FindEntity(r.FromEntity) == nil {
		return nil
	}

	expected := strings.ToLower(r.FromEntity) + "_id"
	if target.FindAttribute(expected) != nil {
		return nil
	}

	return []erd.Warning{{
		Type:         erd.WarnMissingForeignKey,
		Severity:     erd.SeverityWarning,
		Relationship: r.Name,
		Entity:       r.ToEntity,
		Message:      fmt.Sprintf("entity %q has no foreign key column %q for relationship %q", r.ToEntity, expected, r.Name),
		Suggestion:   fmt.Sprintf("add a %q column marked FK to entity %q", expected, r.ToEntity),
		Category:     erd.CategoryRelationships,
		FixData: &erd.FixData{
			EntityName:       r.ToEntity,
			ColumnName:       expected,
			ReferencedEntity: r.FromEntity,
		},
	}}
}

// checkCDM flags entities whose name matches a Common Data Model entity.
func checkCDM(m *erd.Model) []erd.Warning {
	var warns []erd.Warning

	for _, e := range m.Entities {
		if cdmEntities[strings.ToLower(e.Name)] {
			warns = append(warns, erd.Warning{
				Type:       erd.WarnCDMEntityDetected,
				Severity:   erd.SeverityInfo,
				Entity:     e.Name,
				Message:    fmt.Sprintf("entity %q matches the Common Data Model entity %q", e.Name, strings.ToLower(e.Name)),
				Suggestion: "consider reusing the standard platform entity instead of creating a custom one",
				Category:   erd.CategoryCDM,
			})
		}
	}

	return warns
}
