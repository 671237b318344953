// ABOUTME: Round-trip tests: parse, validate, generate corrected text, reparse, revalidate.
// ABOUTME: The generator's output must not re-trigger the warning instances it targeted.
package erd_test

import (
	"strings"
	"testing"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/erdsmith/erdsmith/erd/validator"
)

func countType(warns []erd.Warning, typ erd.WarningType) int {
	n := 0
	for _, w := range warns {
		if w.Type == typ {
			n++
		}
	}
	return n
}

func TestRoundTripResolvesNamingConflict(t *testing.T) {
	src := `erDiagram
	Customer {
		string id PK
		string name
	}`
	m := erd.Parse(src)
	warns := validator.Validate(m)
	if countType(warns, erd.WarnNamingConflict) != 1 {
		t.Fatalf("precondition: expected 1 naming_conflict, got %d", countType(warns, erd.WarnNamingConflict))
	}

	corrected := erd.GenerateCorrected(m, warns)
	reWarns := validator.Validate(erd.Parse(corrected))
	if got := countType(reWarns, erd.WarnNamingConflict); got != 0 {
		t.Errorf("corrected text re-triggered naming_conflict %d times:\n%s", got, corrected)
	}
}

func TestRoundTripResolvesMissingForeignKey(t *testing.T) {
	src := `erDiagram
	Customer {
		string id PK
	}
	Order {
		string id PK
	}
	Customer ||--o{ Order : "places"`
	m := erd.Parse(src)
	warns := validator.Validate(m)
	if countType(warns, erd.WarnMissingForeignKey) != 1 {
		t.Fatalf("precondition: expected 1 missing_foreign_key, got %d", countType(warns, erd.WarnMissingForeignKey))
	}

	corrected := erd.GenerateCorrected(m, warns)
	reWarns := validator.Validate(erd.Parse(corrected))
	if got := countType(reWarns, erd.WarnMissingForeignKey); got != 0 {
		t.Errorf("corrected text re-triggered missing_foreign_key %d times:\n%s", got, corrected)
	}
}

func TestRoundTripDecomposesManyToMany(t *testing.T) {
	src := `erDiagram
	Order {
		string order_id PK
	}
	Product {
		string product_id PK
	}
	Order }o--o{ Product`
	m := erd.Parse(src)
	warns := validator.Validate(m)
	if countType(warns, erd.WarnManyToMany) != 1 {
		t.Fatalf("precondition: expected 1 many_to_many, got %d", countType(warns, erd.WarnManyToMany))
	}

	corrected := erd.GenerateCorrected(m, warns)
	re := erd.Parse(corrected)
	reWarns := validator.Validate(re)

	if got := countType(reWarns, erd.WarnManyToMany); got != 0 {
		t.Errorf("corrected text still contains many-to-many:\n%s", corrected)
	}
	j := re.FindEntity("OrderProduct")
	if j == nil {
		t.Fatalf("expected junction entity OrderProduct in:\n%s", corrected)
	}
	if len(j.Attributes) != 3 {
		t.Errorf("junction attributes = %d, want 3 (1 PK + 2 FK)", len(j.Attributes))
	}
	oneToMany := 0
	for _, r := range re.Relationships {
		if r.ToEntity == "OrderProduct" && r.Cardinality.Kind == erd.OneToMany && r.Name == "has" {
			oneToMany++
		}
	}
	if oneToMany != 2 {
		t.Errorf("expected 2 one-to-many 'has' relationships into the junction, got %d", oneToMany)
	}
	// The junction's own FK columns satisfy the new relationships, so no new
	// missing_foreign_key warnings appear for them.
	for _, w := range reWarns {
		if w.Type == erd.WarnMissingForeignKey && w.Entity == "OrderProduct" {
			t.Errorf("junction should carry its FK columns, got %+v", w)
		}
	}
}

func TestRoundTripStableAfterOnePass(t *testing.T) {
	src := `erDiagram
	Customer {
		string id PK
		string name
	}
	Order {
		string id PK
	}
	Product {
		string id PK
	}
	Customer ||--o{ Order : "places"
	Order }o--o{ Product`
	m := erd.Parse(src)
	warns := validator.Validate(m)
	corrected := erd.GenerateCorrected(m, warns)

	re := erd.Parse(corrected)
	reWarns := validator.Validate(re)
	for _, typ := range []erd.WarningType{
		erd.WarnNamingConflict,
		erd.WarnMissingForeignKey,
		erd.WarnManyToMany,
	} {
		if got := countType(reWarns, typ); got != 0 {
			t.Errorf("%s re-triggered %d times after correction:\n%s", typ, got, corrected)
		}
	}

	// A second correction pass must be a no-op for these categories.
	second := erd.GenerateCorrected(re, reWarns)
	if !strings.Contains(second, "OrderProduct {") {
		t.Errorf("second pass lost the junction entity:\n%s", second)
	}
}
