package postgres

import (
	"regexp"
	"strings"
	"testing"
)

// kindRank encodes the only legal ordering of catalog sections.
var kindRank = map[ObjectKind]int{
	KindType:     0,
	KindTable:    1,
	KindIndex:    2,
	KindFunction: 3,
	KindTrigger:  4,
	KindSeed:     5,
	KindGrant:    6,
}

func TestCatalogSectionOrder(t *testing.T) {
	last := -1
	for _, obj := range Catalog() {
		rank, ok := kindRank[obj.Kind]
		if !ok {
			t.Fatalf("object %s has unknown kind %q", obj.Name, obj.Kind)
		}
		if rank < last {
			t.Errorf("object %s (%s) appears after a later section", obj.Name, obj.Kind)
		}
		last = rank
	}
}

func TestCatalogTablesInDependencyOrder(t *testing.T) {
	refRegex := regexp.MustCompile(`REFERENCES \{schema\}\.(\w+)`)

	seen := map[string]bool{}
	for _, obj := range Catalog() {
		if obj.Kind != KindTable {
			continue
		}
		for _, m := range refRegex.FindAllStringSubmatch(obj.SQL, -1) {
			ref := m[1]
			if ref == obj.Name {
				continue // self-reference is fine
			}
			if !seen[ref] {
				t.Errorf("table %s references %s before it is created", obj.Name, ref)
			}
		}
		seen[obj.Name] = true
	}

	if !seen["users"] {
		t.Error("catalog must create the principal table users")
	}
}

func TestCatalogEveryObjectIdempotent(t *testing.T) {
	for _, obj := range Catalog() {
		var ok bool
		switch obj.Kind {
		case KindType:
			ok = strings.Contains(obj.SQL, "duplicate_object")
		case KindTable, KindIndex:
			ok = strings.Contains(obj.SQL, "IF NOT EXISTS")
		case KindFunction, KindTrigger:
			ok = strings.Contains(obj.SQL, "OR REPLACE")
		case KindSeed:
			ok = strings.Contains(obj.SQL, "ON CONFLICT")
		case KindGrant:
			ok = true // grants are idempotent by nature
		}
		if !ok {
			t.Errorf("object %s (%s) is not safe to re-issue", obj.Name, obj.Kind)
		}
	}
}

func TestCatalogSeedsKeyedByNaturalCode(t *testing.T) {
	for _, obj := range Catalog() {
		if obj.Kind != KindSeed {
			continue
		}
		if !strings.Contains(obj.SQL, "ON CONFLICT (code) DO NOTHING") {
			t.Errorf("seed %s must upsert by natural code, not position", obj.Name)
		}
	}
}

func TestObjectRender(t *testing.T) {
	obj := Object{Kind: KindGrant, Name: "g", SQL: `GRANT USAGE ON SCHEMA {schema} TO {role}`}
	got := obj.Render("tenant_acme", "gestion_user")
	want := `GRANT USAGE ON SCHEMA tenant_acme TO gestion_user`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	for _, o := range Catalog() {
		rendered := o.Render("tenant_acme", "gestion_user")
		if strings.Contains(rendered, "{schema}") || strings.Contains(rendered, "{role}") {
			t.Errorf("object %s: unresolved placeholder after Render", o.Name)
		}
	}
}

func TestIdentRegex(t *testing.T) {
	valid := []string{"tenant_mi_empresa", "public", "gestion_user", "tenant_a1"}
	for _, s := range valid {
		if !identRegex.MatchString(s) {
			t.Errorf("identRegex should accept %q", s)
		}
	}
	invalid := []string{"", "Tenant", "tenant-x", `tenant";DROP SCHEMA public`, "1tenant", "tenant x"}
	for _, s := range invalid {
		if identRegex.MatchString(s) {
			t.Errorf("identRegex should reject %q", s)
		}
	}
}
