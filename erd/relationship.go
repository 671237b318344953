// ABOUTME: Relationship line parser and cardinality classification for the erDiagram DSL subset.
// ABOUTME: Classification is an ordered predicate list over the symbol run; precedence is load-bearing.
package erd

import (
	"regexp"
	"strings"
)

// relationshipRe matches: FROM SYMBOLS TO [: "label"], where SYMBOLS is a
// free-form run of cardinality characters. The label quotes are optional.
var relationshipRe = regexp.MustCompile(`^(\w+)\s+([|{}o-]+)\s+(\w+)(?:\s*:\s*"?([^"]*?)"?)?\s*$`)

// cardinalityRule pairs a predicate over the symbol run with the kind it
// selects. Rules are evaluated top to bottom and the first match wins.
type cardinalityRule struct {
	matches func(symbols string) bool
	kind    CardinalityKind
}

// cardinalityRules is the fixed classification precedence. The order is a
// behavioral contract: "||--o{" must classify as one-to-many even though it
// also contains "o" and "{", and "||--||" as one-to-one.
var cardinalityRules = []cardinalityRule{
	{
		matches: func(s string) bool { return strings.Contains(s, "||") && strings.Contains(s, "{") },
		kind:    OneToMany,
	},
	{
		matches: func(s string) bool { return strings.Count(s, "||") >= 2 },
		kind:    OneToOne,
	},
	{
		matches: func(s string) bool { return strings.Contains(s, "{") && strings.Contains(s, "}") },
		kind:    ManyToMany,
	},
	{
		matches: func(s string) bool { return strings.Contains(s, "o") && strings.Contains(s, "{") },
		kind:    ZeroToMany,
	},
}

// classifyCardinality maps a symbol run to a Cardinality using the fixed rule
// precedence. Unmatched runs classify as unknown.
func classifyCardinality(symbols string) Cardinality {
	for _, rule := range cardinalityRules {
		if rule.matches(symbols) {
			return cardinalityFromKind(rule.kind)
		}
	}
	return cardinalityFromKind(Unknown)
}

// cardinalityFromKind expands a kind into per-side multiplicity words.
func cardinalityFromKind(kind CardinalityKind) Cardinality {
	c := Cardinality{Kind: kind}
	switch kind {
	case OneToOne:
		c.From, c.To = "one", "one"
	case OneToMany:
		c.From, c.To = "one", "many"
	case ZeroToMany:
		c.From, c.To = "zero", "many"
	case ManyToMany:
		c.From, c.To = "many", "many"
	default:
		c.From, c.To = "unknown", "unknown"
	}
	return c
}

// parseRelationship parses a line outside any entity block into a
// Relationship, or returns nil if the line does not match the grammar. The
// from/to identifiers are recorded as written; whether they name declared
// entities is checked later by the validator.
func parseRelationship(line string) *Relationship {
	m := relationshipRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	from, symbols, to, label := m[1], m[2], m[3], strings.TrimSpace(m[4])

	name := label
	if name == "" {
		name = from + "_" + to
	}

	return &Relationship{
		FromEntity:  from,
		ToEntity:    to,
		Cardinality: classifyCardinality(symbols),
		Name:        name,
		DisplayName: Humanize(name),
		Symbols:     symbols,
		Label:       label,
	}
}
