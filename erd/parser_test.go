// ABOUTME: Tests for the erDiagram DSL parser: line classification, entity blocks, and attribute grammar.
// ABOUTME: Covers the attribute/relationship disambiguation contract and silent handling of unknown lines.
package erd

import (
	"strings"
	"testing"
)

func TestParseEmptyInput(t *testing.T) {
	m := Parse("")
	if len(m.Entities) != 0 {
		t.Errorf("expected 0 entities, got %d", len(m.Entities))
	}
	if len(m.Relationships) != 0 {
		t.Errorf("expected 0 relationships, got %d", len(m.Relationships))
	}
}

func TestParseSingleEntity(t *testing.T) {
	input := `erDiagram
	Customer {
		string id PK
		string email_address
	}`
	m := Parse(input)
	if len(m.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(m.Entities))
	}
	e := m.Entities[0]
	if e.Name != "Customer" {
		t.Errorf("entity name = %q, want %q", e.Name, "Customer")
	}
	if e.DisplayName != "Customer" {
		t.Errorf("entity displayName = %q, want %q", e.DisplayName, "Customer")
	}
	if len(e.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(e.Attributes))
	}
	id := e.Attributes[0]
	if !id.IsPrimaryKey {
		t.Error("expected id to be primary key")
	}
	if !id.IsRequired {
		t.Error("PK implies required")
	}
	if id.OriginalType != "string" {
		t.Errorf("originalType = %q, want %q", id.OriginalType, "string")
	}
}

func TestParsePreservesDeclarationOrder(t *testing.T) {
	input := `erDiagram
	Zebra { string id PK }
	Apple {
		string id PK
	}
	Mango {
		string id PK
	}`
	m := Parse(input)
	// "Zebra { string id PK }" is a one-line block header candidate that does
	// not match "identifier {" exactly, so it is dropped; Apple and Mango parse.
	want := []string{"Apple", "Mango"}
	if len(m.Entities) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(m.Entities))
	}
	for i, name := range want {
		if m.Entities[i].Name != name {
			t.Errorf("entity[%d] = %q, want %q", i, m.Entities[i].Name, name)
		}
	}
}

func TestParseEntityCountAndOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("erDiagram\n")
	names := []string{"Account", "Contact", "Invoice", "Shipment"}
	for _, n := range names {
		b.WriteString(n + " {\n    string id PK\n}\n")
	}
	m := Parse(b.String())
	if len(m.Entities) != len(names) {
		t.Fatalf("expected %d entities, got %d", len(names), len(m.Entities))
	}
	for i, n := range names {
		if m.Entities[i].Name != n {
			t.Errorf("entity[%d] = %q, want %q", i, m.Entities[i].Name, n)
		}
	}
}

func TestParseSkipsCommentsAndHeader(t *testing.T) {
	input := `erDiagram
	%% this is a comment
	Customer {
		%% inline comment
		string id PK
	}`
	m := Parse(input)
	if len(m.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(m.Entities))
	}
	if len(m.Entities[0].Attributes) != 1 {
		t.Errorf("expected 1 attribute, got %d", len(m.Entities[0].Attributes))
	}
}

func TestParseRedeclaredEntityKeepsFirstSeenOrder(t *testing.T) {
	input := `erDiagram
	A {
		string id PK
	}
	B {
		string id PK
	}
	A {
		string extra
	}`
	m := Parse(input)
	if len(m.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(m.Entities))
	}
	if m.Entities[0].Name != "A" || m.Entities[1].Name != "B" {
		t.Errorf("order = [%s, %s], want [A, B]", m.Entities[0].Name, m.Entities[1].Name)
	}
	if len(m.Entities[0].Attributes) != 2 {
		t.Errorf("redeclared entity should accumulate attributes, got %d", len(m.Entities[0].Attributes))
	}
}

func TestParseUnclosedBlockAcceptedSilently(t *testing.T) {
	input := `erDiagram
	Customer {
		string id PK`
	m := Parse(input)
	if len(m.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(m.Entities))
	}
	if len(m.Entities[0].Attributes) != 1 {
		t.Errorf("expected 1 attribute, got %d", len(m.Entities[0].Attributes))
	}
}

func TestParseUnknownLinesDropped(t *testing.T) {
	input := `erDiagram
	this is not anything recognizable !!!
	Customer {
		string id PK
		@@@ bogus
	}`
	m := Parse(input)
	if len(m.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(m.Entities))
	}
	if got := len(m.Entities[0].Attributes); got != 1 {
		t.Errorf("expected bogus line to be dropped, got %d attributes", got)
	}
}

func TestParseFreshStatePerCall(t *testing.T) {
	input := `erDiagram
	Customer {
		string id PK
	}
	Customer ||--o{ Order : "places"`
	first := Parse(input)
	second := Parse(input)
	if len(second.Entities) != len(first.Entities) {
		t.Errorf("second parse entities = %d, want %d", len(second.Entities), len(first.Entities))
	}
	if len(second.Relationships) != len(first.Relationships) {
		t.Errorf("second parse relationships = %d, want %d", len(second.Relationships), len(first.Relationships))
	}
}

func TestRelationshipLineInsideEntityBlockIsNotAnAttribute(t *testing.T) {
	// A relationship nested near an entity block contains a colon and quoted
	// text, both of which the attribute grammar also uses. It must be rejected.
	input := `erDiagram
	Task {
		string id PK
		Task ||--o{ Contact : "assigned_to"
	}`
	m := Parse(input)
	e := m.FindEntity("Task")
	if e == nil {
		t.Fatal("expected entity Task")
	}
	if len(e.Attributes) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(e.Attributes))
	}
	if e.Attributes[0].Name != "id" {
		t.Errorf("attribute = %q, want %q", e.Attributes[0].Name, "id")
	}
}

func TestLooksLikeRelationshipCascade(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`Task ||--o{ Contact : "assigned_to"`, true}, // strict grammar
		{`weird ||-- thing with words`, true},         // loose marker ||--
		{`something --o{ other`, true},                // loose marker --o{
		{`contains o{ somewhere`, true},               // loose marker o{
		{`contains }| somewhere`, true},               // loose marker }|
		{`anything at all : "label"`, true},           // trailing quoted label
		{`string id PK`, false},
		{`string notes "free text"`, false},
		{`choice(Red,Blue) color`, false},
	}
	for _, tt := range tests {
		if got := looksLikeRelationship(tt.line); got != tt.want {
			t.Errorf("looksLikeRelationship(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseAttributeGrammar(t *testing.T) {
	tests := []struct {
		line        string
		name        string
		typ         SemanticType
		pk, fk, uk  bool
		required    bool
		description string
	}{
		{"string id PK", "id", TypeString, true, false, false, true, ""},
		{"int quantity NOT NULL", "quantity", TypeInteger, false, false, false, true, ""},
		{"string code UK", "code", TypeString, false, false, true, false, ""},
		{"string customer_id FK", "customer_id", TypeString, false, true, false, false, ""},
		{`string notes "Free-form notes"`, "notes", TypeString, false, false, false, false, "Free-form notes"},
		{`decimal amount PK FK "composite"`, "amount", TypeDecimal, true, true, false, true, "composite"},
	}
	for _, tt := range tests {
		a := parseAttribute(tt.line)
		if a == nil {
			t.Errorf("parseAttribute(%q) = nil, want attribute", tt.line)
			continue
		}
		if a.Name != tt.name {
			t.Errorf("%q: name = %q, want %q", tt.line, a.Name, tt.name)
		}
		if a.Type != tt.typ {
			t.Errorf("%q: type = %q, want %q", tt.line, a.Type, tt.typ)
		}
		if a.IsPrimaryKey != tt.pk || a.IsForeignKey != tt.fk || a.IsUnique != tt.uk {
			t.Errorf("%q: flags PK=%v FK=%v UK=%v, want PK=%v FK=%v UK=%v",
				tt.line, a.IsPrimaryKey, a.IsForeignKey, a.IsUnique, tt.pk, tt.fk, tt.uk)
		}
		if a.IsRequired != tt.required {
			t.Errorf("%q: required = %v, want %v", tt.line, a.IsRequired, tt.required)
		}
		if a.Description != tt.description {
			t.Errorf("%q: description = %q, want %q", tt.line, a.Description, tt.description)
		}
	}
}

func TestParseAttributeDisplayName(t *testing.T) {
	a := parseAttribute("string customer_id FK")
	if a == nil {
		t.Fatal("expected attribute")
	}
	if a.DisplayName != "Customer Id" {
		t.Errorf("displayName = %q, want %q", a.DisplayName, "Customer Id")
	}
}
