// ABOUTME: Exports a parse result as a structured YAML document for downstream tooling.
// ABOUTME: Uses gopkg.in/yaml.v3 with mirror structs so the document layout is explicit and stable.
package export

import (
	"fmt"

	"github.com/erdsmith/erdsmith/erd"
	"gopkg.in/yaml.v3"
)

// YamlAttribute is a serializable YAML representation of a single attribute.
type YamlAttribute struct {
	Name          string   `yaml:"name"`
	DisplayName   string   `yaml:"display_name"`
	Type          string   `yaml:"type"`
	OriginalType  string   `yaml:"original_type"`
	Description   string   `yaml:"description,omitempty"`
	PrimaryKey    bool     `yaml:"primary_key,omitempty"`
	ForeignKey    bool     `yaml:"foreign_key,omitempty"`
	Unique        bool     `yaml:"unique,omitempty"`
	Required      bool     `yaml:"required,omitempty"`
	ChoiceOptions []string `yaml:"choice_options,omitempty"`
	TargetEntity  string   `yaml:"target_entity,omitempty"`
}

// YamlEntity is a serializable YAML representation of an entity.
type YamlEntity struct {
	Name        string          `yaml:"name"`
	DisplayName string          `yaml:"display_name"`
	Attributes  []YamlAttribute `yaml:"attributes"`
}

// YamlRelationship is a serializable YAML representation of a relationship.
type YamlRelationship struct {
	Name        string `yaml:"name"`
	From        string `yaml:"from"`
	To          string `yaml:"to"`
	Cardinality string `yaml:"cardinality"`
}

// YamlWarning is a serializable YAML representation of a validation warning.
type YamlWarning struct {
	Rule       string `yaml:"rule"`
	Severity   string `yaml:"severity"`
	Entity     string `yaml:"entity,omitempty"`
	Message    string `yaml:"message"`
	Suggestion string `yaml:"suggestion,omitempty"`
}

// YamlSchema is the top-level serializable YAML representation of a result.
type YamlSchema struct {
	Status        string             `yaml:"status"`
	Valid         bool               `yaml:"valid"`
	Entities      []YamlEntity       `yaml:"entities"`
	Relationships []YamlRelationship `yaml:"relationships,omitempty"`
	Warnings      []YamlWarning      `yaml:"warnings,omitempty"`
}

// ExportYAML exports a parse result as a YAML document. Entities and
// attributes keep model order, which is first-declared source order.
func ExportYAML(res *erd.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil result")
	}

	doc := YamlSchema{
		Status: res.Validation.Status,
		Valid:  res.Validation.IsValid,
	}

	doc.Entities = make([]YamlEntity, 0, len(res.Entities))
	for _, e := range res.Entities {
		ye := YamlEntity{
			Name:        e.Name,
			DisplayName: e.DisplayName,
			Attributes:  make([]YamlAttribute, 0, len(e.Attributes)),
		}
		for _, a := range e.Attributes {
			ye.Attributes = append(ye.Attributes, YamlAttribute{
				Name:          a.Name,
				DisplayName:   a.DisplayName,
				Type:          string(a.Type),
				OriginalType:  a.OriginalType,
				Description:   a.Description,
				PrimaryKey:    a.IsPrimaryKey,
				ForeignKey:    a.IsForeignKey,
				Unique:        a.IsUnique,
				Required:      a.IsRequired,
				ChoiceOptions: a.ChoiceOptions,
				TargetEntity:  a.TargetEntity,
			})
		}
		doc.Entities = append(doc.Entities, ye)
	}

	for _, r := range res.Relationships {
		doc.Relationships = append(doc.Relationships, YamlRelationship{
			Name:        r.Name,
			From:        r.FromEntity,
			To:          r.ToEntity,
			Cardinality: string(r.Cardinality.Kind),
		})
	}

	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, YamlWarning{
			Rule:       string(w.Type),
			Severity:   w.Severity,
			Entity:     w.Entity,
			Message:    w.Message,
			Suggestion: w.Suggestion,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	return string(data), nil
}
