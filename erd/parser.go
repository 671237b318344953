// ABOUTME: Line-oriented parser for the erDiagram DSL subset producing a Model.
// ABOUTME: Classifies lines with a two-state block machine and disambiguates attributes from relationship lines.
package erd

import (
	"regexp"
	"strings"
)

const diagramHeader = "erDiagram"

var (
	// entityHeaderRe matches "Identifier {" opening an entity block.
	entityHeaderRe = regexp.MustCompile(`^(\w+)\s*\{$`)

	// attributeRe matches: TYPE NAME [CONSTRAINTS] ["DESCRIPTION"]. The type
	// token may be parameterized, e.g. choice(a,b) or lookup(Target).
	attributeRe = regexp.MustCompile(`^([A-Za-z_]\w*(?:\([^)]*\))?)\s+([A-Za-z_]\w*)(?:\s+([^"]*?))?(?:\s*"([^"]*)")?\s*$`)

	// trailingLabelRe matches a trailing relationship label: : "text".
	trailingLabelRe = regexp.MustCompile(`:\s*"[^"]*"\s*$`)
)

// relationshipMarkers are symbol fragments that only occur in relationship
// lines. A line containing any of them is never parsed as an attribute, even
// inside an entity block.
var relationshipMarkers = []string{"||--", "--o{", "o{", "}|"}

// Parse parses DSL source into a Model. Parsing never fails: lines matching no
// known grammar are dropped, and every structural problem is deferred to the
// validator. Each call builds a fresh Model, so a single zero-state call site
// can parse repeatedly without leaking entities or relationships.
//
// Block state is a two-state machine: "Identifier {" enters an entity block,
// "}" leaves it. Lines inside a block go to the attribute parser; lines
// outside go to the relationship parser. An entity block left unclosed at end
// of input is accepted silently.
func Parse(input string) *Model {
	m := NewModel()
	var current *Entity

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") || line == diagramHeader {
			continue
		}

		if current != nil {
			if line == "}" {
				current = nil
				continue
			}
			if attr := parseAttribute(line); attr != nil {
				current.Attributes = append(current.Attributes, attr)
			}
			continue
		}

		if h := entityHeaderRe.FindStringSubmatch(line); h != nil {
			current = m.AddEntity(h[1])
			continue
		}
		if rel := parseRelationship(line); rel != nil {
			m.AddRelationship(rel)
		}
		// Anything else is silently dropped.
	}

	return m
}

// looksLikeRelationship reports whether a line is relationship-shaped. The
// checks run in a fixed order: the strict FROM SYMBOLS TO grammar, then loose
// symbol fragments anywhere in the line, then a trailing quoted label. The
// attribute parser consults this first because attribute and relationship
// lines share vocabulary (colons, quoted text); a relationship written inside
// an entity block must not be mis-parsed as a column.
func looksLikeRelationship(line string) bool {
	if relationshipRe.MatchString(line) {
		return true
	}
	for _, marker := range relationshipMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return trailingLabelRe.MatchString(line)
}

// parseAttribute parses a line inside an entity block into an Attribute, or
// returns nil if the line is relationship-shaped or matches no attribute
// grammar.
func parseAttribute(line string) *Attribute {
	if looksLikeRelationship(line) {
		return nil
	}

	m := attributeRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	typeToken, name, constraints, description := m[1], m[2], strings.TrimSpace(m[3]), m[4]

	attr := &Attribute{
		Name:         name,
		DisplayName:  Humanize(name),
		OriginalType: typeToken,
		Description:  description,
	}
	attr.Type, attr.ChoiceOptions, attr.TargetEntity = mapTypeToken(typeToken)
	attr.Type = inferSemanticType(name, attr.Type)

	// Constraint detection is substring-based over the constraint field, not
	// token-exact. This is a documented behavioral contract.
	attr.IsPrimaryKey = strings.Contains(constraints, "PK")
	attr.IsForeignKey = strings.Contains(constraints, "FK")
	attr.IsUnique = strings.Contains(constraints, "UK")
	attr.IsRequired = strings.Contains(constraints, "NOT NULL") || attr.IsPrimaryKey

	return attr
}
