// ABOUTME: Tests for the two-stage type mapping: explicit token table and semantic name inference.
// ABOUTME: Verifies inference only upgrades generic String/DateTime results and never explicit types.
package erd

import (
	"reflect"
	"testing"
)

func TestMapTypeTokenScalars(t *testing.T) {
	tests := []struct {
		token string
		want  SemanticType
	}{
		{"string", TypeString},
		{"STRING", TypeString},
		{"int", TypeInteger},
		{"integer", TypeInteger},
		{"decimal", TypeDecimal},
		{"money", TypeMoney},
		{"currency", TypeMoney},
		{"bool", TypeBoolean},
		{"boolean", TypeBoolean},
		{"date", TypeDateTime},
		{"datetime", TypeDateTime},
		{"timestamp", TypeDateTime},
		{"text", TypeMemo},
		{"memo", TypeMemo},
		{"guid", TypeUniqueidentifier},
		{"uuid", TypeUniqueidentifier},
		{"email", TypeEmail},
		{"phone", TypePhone},
		{"url", TypeUrl},
		{"duration", TypeDuration},
		{"file", TypeFile},
		{"image", TypeImage},
		{"ticker", TypeTicker},
		{"timezone", TypeTimeZone},
		{"language", TypeLanguage},
		{"float", TypeFloat},
		{"double", TypeFloat},
		{"varchar", TypeString}, // unknown token defaults to String
		{"blob", TypeString},
	}
	for _, tt := range tests {
		got, _, _ := mapTypeToken(tt.token)
		if got != tt.want {
			t.Errorf("mapTypeToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestMapTypeTokenChoice(t *testing.T) {
	typ, opts, target := mapTypeToken("choice(Red, Blue,Green)")
	if typ != TypeChoice {
		t.Errorf("type = %q, want %q", typ, TypeChoice)
	}
	if want := []string{"Red", "Blue", "Green"}; !reflect.DeepEqual(opts, want) {
		t.Errorf("options = %v, want %v", opts, want)
	}
	if target != "" {
		t.Errorf("target = %q, want empty", target)
	}
}

func TestMapTypeTokenLookup(t *testing.T) {
	typ, opts, target := mapTypeToken("lookup(Customer)")
	if typ != TypeLookup {
		t.Errorf("type = %q, want %q", typ, TypeLookup)
	}
	if opts != nil {
		t.Errorf("options = %v, want nil", opts)
	}
	if target != "Customer" {
		t.Errorf("target = %q, want %q", target, "Customer")
	}
}

func TestInferSemanticTypeStringUpgrades(t *testing.T) {
	tests := []struct {
		name string
		want SemanticType
	}{
		{"email_address", TypeEmail},
		{"WorkEmail", TypeEmail},
		{"phone_number", TypePhone},
		{"mobile", TypePhone},
		{"telephone", TypePhone},
		{"website_url", TypeUrl},
		{"website", TypeUrl},
		{"profile_link", TypeUrl},
		{"plain_field", TypeString},
	}
	for _, tt := range tests {
		if got := inferSemanticType(tt.name, TypeString); got != tt.want {
			t.Errorf("inferSemanticType(%q, String) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInferSemanticTypeDateOnlyUpgrades(t *testing.T) {
	for _, name := range []string{
		"birthdate", "dateofbirth", "startdate", "enddate", "duedate",
		"orderdate", "deliverydate", "createddate", "modifieddate",
	} {
		if got := inferSemanticType(name, TypeDateTime); got != TypeDateOnly {
			t.Errorf("inferSemanticType(%q, DateTime) = %q, want %q", name, got, TypeDateOnly)
		}
	}
	if got := inferSemanticType("lastseen", TypeDateTime); got != TypeDateTime {
		t.Errorf("inferSemanticType(lastseen, DateTime) = %q, want DateTime", got)
	}
}

func TestInferenceNeverOverridesExplicitTypes(t *testing.T) {
	// An attribute whose stage-1 result is already specific must keep it even
	// when the name would otherwise trigger a heuristic.
	if got := inferSemanticType("bogus_startdate_value", TypeInteger); got != TypeInteger {
		t.Errorf("got %q, want Integer", got)
	}
	if got := inferSemanticType("email_options", TypeChoice); got != TypeChoice {
		t.Errorf("got %q, want Choice", got)
	}
	if got := inferSemanticType("email_ref", TypeLookup); got != TypeLookup {
		t.Errorf("got %q, want Lookup", got)
	}
}

func TestParsedAttributeInference(t *testing.T) {
	input := `erDiagram
	Event {
		string id PK
		string email_address
		date startdate "Start"
		int bogus_startdate_value
		choice(Red,Blue) color
	}`
	m := Parse(input)
	e := m.FindEntity("Event")
	if e == nil {
		t.Fatal("expected entity Event")
	}

	byName := func(name string) *Attribute {
		t.Helper()
		a := e.FindAttribute(name)
		if a == nil {
			t.Fatalf("attribute %q not found", name)
		}
		return a
	}

	if got := byName("email_address").Type; got != TypeEmail {
		t.Errorf("email_address type = %q, want Email", got)
	}
	if got := byName("startdate").Type; got != TypeDateOnly {
		t.Errorf("startdate type = %q, want DateOnly", got)
	}
	if got := byName("bogus_startdate_value").Type; got != TypeInteger {
		t.Errorf("bogus_startdate_value type = %q, want Integer", got)
	}
	color := byName("color")
	if color.Type != TypeChoice {
		t.Errorf("color type = %q, want Choice", color.Type)
	}
	if want := []string{"Red", "Blue"}; !reflect.DeepEqual(color.ChoiceOptions, want) {
		t.Errorf("color options = %v, want %v", color.ChoiceOptions, want)
	}
	if got := byName("startdate").OriginalType; got != "date" {
		t.Errorf("startdate originalType = %q, want %q", got, "date")
	}
}
