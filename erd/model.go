// ABOUTME: Model types for the ERD DSL: entities, attributes, relationships, and the parse result.
// ABOUTME: The Model keeps entities in first-declared order because corrected-text regeneration depends on it.
package erd

import (
	"strings"
	"unicode"
)

// SemanticType is the canonical attribute type resolved from a DSL type token.
type SemanticType string

// The closed set of canonical semantic types. The string spellings are part of
// the wire contract consumed by the provisioning orchestrator and must not change.
const (
	TypeString           SemanticType = "String"
	TypeInteger          SemanticType = "Integer"
	TypeDecimal          SemanticType = "Decimal"
	TypeMoney            SemanticType = "Money"
	TypeBoolean          SemanticType = "Boolean"
	TypeDateTime         SemanticType = "DateTime"
	TypeDateOnly         SemanticType = "DateOnly"
	TypeMemo             SemanticType = "Memo"
	TypeUniqueidentifier SemanticType = "Uniqueidentifier"
	TypeEmail            SemanticType = "Email"
	TypePhone            SemanticType = "Phone"
	TypeUrl              SemanticType = "Url"
	TypeDuration         SemanticType = "Duration"
	TypeFile             SemanticType = "File"
	TypeImage            SemanticType = "Image"
	TypeTicker           SemanticType = "Ticker"
	TypeTimeZone         SemanticType = "TimeZone"
	TypeLanguage         SemanticType = "Language"
	TypeFloat            SemanticType = "Float"
	TypeChoice           SemanticType = "Choice"
	TypeLookup           SemanticType = "Lookup"
)

// Attribute represents a single column parsed from an entity block.
// OriginalType preserves the verbatim DSL token so corrected text can
// round-trip without normalizing types the user wrote.
type Attribute struct {
	Name          string       `json:"name"`
	DisplayName   string       `json:"displayName"`
	OriginalType  string       `json:"originalType"`
	Type          SemanticType `json:"type"`
	Description   string       `json:"description,omitempty"`
	IsPrimaryKey  bool         `json:"isPrimaryKey"`
	IsForeignKey  bool         `json:"isForeignKey"`
	IsUnique      bool         `json:"isUnique"`
	IsRequired    bool         `json:"isRequired"`
	ChoiceOptions []string     `json:"choiceOptions,omitempty"`
	TargetEntity  string       `json:"targetEntity,omitempty"`
}

// Entity represents one declared entity with its ordered attribute list.
type Entity struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Attributes  []*Attribute `json:"attributes"`
}

// FindAttribute returns the first attribute whose name matches case-insensitively,
// or nil if none does.
func (e *Entity) FindAttribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// PrimaryKeys returns the attributes marked PK, in declaration order.
func (e *Entity) PrimaryKeys() []*Attribute {
	var pks []*Attribute
	for _, a := range e.Attributes {
		if a.IsPrimaryKey {
			pks = append(pks, a)
		}
	}
	return pks
}

// IsJunction reports whether the entity is a junction (intersection) table:
// more than one primary key, of which more than one is also a foreign key.
// Junction-table primary keys are exempt from the canonical PK rename.
func (e *Entity) IsJunction() bool {
	pks := e.PrimaryKeys()
	if len(pks) <= 1 {
		return false
	}
	fkCount := 0
	for _, a := range pks {
		if a.IsForeignKey {
			fkCount++
		}
	}
	return fkCount > 1
}

// CardinalityKind classifies relationship multiplicity.
type CardinalityKind string

const (
	OneToOne   CardinalityKind = "one-to-one"
	OneToMany  CardinalityKind = "one-to-many"
	ManyToMany CardinalityKind = "many-to-many"
	ZeroToMany CardinalityKind = "zero-to-many"
	Unknown    CardinalityKind = "unknown"
)

// Cardinality holds the classified multiplicity of a relationship along with
// the per-side multiplicity words derived from the kind.
type Cardinality struct {
	Kind CardinalityKind `json:"kind"`
	From string          `json:"from"`
	To   string          `json:"to"`
}

// Relationship represents a connection between two entities. FromEntity and
// ToEntity are recorded as written; existence against declared entities is a
// validator concern, not a parser concern.
type Relationship struct {
	FromEntity  string      `json:"fromEntity"`
	ToEntity    string      `json:"toEntity"`
	Cardinality Cardinality `json:"cardinality"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`

	// Symbols is the verbatim cardinality symbol run and Label the raw label
	// text (empty when the line had none). Both are kept for corrected-text
	// regeneration and are not part of the wire contract.
	Symbols string `json:"-"`
	Label   string `json:"-"`
}

// Model is the complete parsed diagram: entities in first-declared order plus
// relationships in source order. Redeclaring an entity name reuses the
// original entry, so insertion order is always first-seen order.
type Model struct {
	Entities      []*Entity
	Relationships []*Relationship

	index map[string]*Entity
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		Entities:      make([]*Entity, 0),
		Relationships: make([]*Relationship, 0),
		index:         make(map[string]*Entity),
	}
}

// AddEntity returns the entity with the given name, creating and appending it
// if it has not been declared yet.
func (m *Model) AddEntity(name string) *Entity {
	if e, ok := m.index[name]; ok {
		return e
	}
	e := &Entity{
		Name:        name,
		DisplayName: Humanize(name),
		Attributes:  make([]*Attribute, 0),
	}
	m.Entities = append(m.Entities, e)
	m.index[name] = e
	return e
}

// FindEntity returns the entity declared with the given name, or nil.
func (m *Model) FindEntity(name string) *Entity {
	return m.index[name]
}

// AddRelationship appends a relationship to the model.
func (m *Model) AddRelationship(r *Relationship) {
	m.Relationships = append(m.Relationships, r)
}

// Warning severity levels, ordered error > warning > info.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Warning categories group rules for presentation in the wizard UI.
const (
	CategoryStructure     = "structure"
	CategoryNaming        = "naming"
	CategoryRelationships = "relationships"
	CategoryCDM           = "cdm"
)

// WarningType identifies the validation rule that produced a warning.
type WarningType string

// Known warning types. The spellings are part of the wire contract.
const (
	WarnMissingPrimaryKey    WarningType = "missing_primary_key"
	WarnMultiplePrimaryKeys  WarningType = "multiple_primary_keys"
	WarnDuplicateColumns     WarningType = "duplicate_columns"
	WarnEmptyEntity          WarningType = "empty_entity"
	WarnNamingConflict       WarningType = "naming_conflict"
	WarnSystemColumnConflict WarningType = "system_column_conflict"
	WarnMissingEntity        WarningType = "missing_entity"
	WarnManyToMany           WarningType = "many_to_many_relationship"
	WarnSelfReferencing      WarningType = "self_referencing_relationship"
	WarnMissingForeignKey    WarningType = "missing_foreign_key"
	WarnCDMEntityDetected    WarningType = "cdm_entity_detected"
)

// FixData carries the rule-specific payload the corrected-ERD generator needs
// to apply a fix without re-deriving context. Only the fields relevant to the
// producing rule are populated.
type FixData struct {
	EntityName       string   `json:"entityName,omitempty"`       // missing_foreign_key: entity to receive the column
	ColumnName       string   `json:"columnName,omitempty"`       // missing_foreign_key: expected column name
	ReferencedEntity string   `json:"referencedEntity,omitempty"` // missing_foreign_key: entity the column points at
	JunctionName     string   `json:"junctionName,omitempty"`     // many_to_many_relationship: synthesized entity name
	FromEntity       string   `json:"fromEntity,omitempty"`       // many_to_many_relationship: left side
	ToEntity         string   `json:"toEntity,omitempty"`         // many_to_many_relationship: right side
	Columns          []string `json:"columns,omitempty"`          // multiple_primary_keys / duplicate_columns: offenders
}

// Warning is a single validation finding. Entity and Relationship reference
// the offending element by name; one of them is usually empty.
type Warning struct {
	Type         WarningType `json:"type"`
	Severity     string      `json:"severity"`
	Entity       string      `json:"entity,omitempty"`
	Relationship string      `json:"relationship,omitempty"`
	Message      string      `json:"message"`
	Suggestion   string      `json:"suggestion,omitempty"`
	Category     string      `json:"category"`
	FixData      *FixData    `json:"fixData,omitempty"`
}

// ValidationSummary aggregates warnings into the overall verdict. IsValid is
// true iff no error-severity warning exists; Status reflects the highest
// severity present.
type ValidationSummary struct {
	IsValid      bool   `json:"isValid"`
	Status       string `json:"status"`
	ErrorCount   int    `json:"errorCount"`
	WarningCount int    `json:"warningCount"`
	InfoCount    int    `json:"infoCount"`
}

// Summarize computes the validation summary for a warning list.
func Summarize(warnings []Warning) ValidationSummary {
	s := ValidationSummary{Status: "success"}
	for _, w := range warnings {
		switch w.Severity {
		case SeverityError:
			s.ErrorCount++
		case SeverityWarning:
			s.WarningCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}
	switch {
	case s.ErrorCount > 0:
		s.Status = "error"
	case s.WarningCount > 0:
		s.Status = "warning"
	}
	s.IsValid = s.ErrorCount == 0
	return s
}

// Result is the complete output structure consumed by the wizard UI and the
// schema-provisioning orchestrator. Field names are the wire contract.
type Result struct {
	Entities      []*Entity         `json:"entities"`
	Relationships []*Relationship   `json:"relationships"`
	Warnings      []Warning         `json:"warnings"`
	Validation    ValidationSummary `json:"validation"`
}

// Humanize converts an identifier like "customer_id" or "OrderLine" into a
// human-readable display name ("Customer Id", "Order Line").
func Humanize(name string) string {
	if name == "" {
		return ""
	}
	// Underscores and hyphens separate words; PascalCase boundaries do too.
	var words []string
	for _, chunk := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		words = append(words, splitCamelWords(chunk)...)
	}
	for i, w := range words {
		low := strings.ToLower(w)
		words[i] = strings.ToUpper(low[:1]) + low[1:]
	}
	return strings.Join(words, " ")
}

// splitCamelWords splits a single chunk on lower-to-upper and acronym boundaries.
func splitCamelWords(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev := runes[i-1]
		curr := runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(curr) && (unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}
