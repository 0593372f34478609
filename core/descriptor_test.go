package core

import "testing"

func TestTypeRef_AssignableFromWalksParents(t *testing.T) {
	relational := NewTypeRef("relational", KindService)
	mysql := NewTypeRef("mysql", relational)

	if !relational.AssignableFrom(mysql) {
		t.Fatalf("expected relational to accept mysql")
	}
	if !KindService.AssignableFrom(mysql) {
		t.Fatalf("expected service root to accept mysql")
	}
	if mysql.AssignableFrom(relational) {
		t.Fatalf("did not expect mysql to accept relational")
	}
}

func TestTypeRef_ZeroIsWildcard(t *testing.T) {
	mysql := NewTypeRef("mysql", KindService)

	var wildcard TypeRef
	if !wildcard.AssignableFrom(mysql) {
		t.Fatalf("expected zero type to accept anything")
	}
	if mysql.AssignableFrom(wildcard) {
		t.Fatalf("did not expect a named type to accept the zero type")
	}
}

func TestDeclaredProperty_KeyDefaultsToAccessor(t *testing.T) {
	named := DeclaredProperty{Name: "hostname", Accessor: "Host"}
	if got := named.Key(); got != "hostname" {
		t.Fatalf("expected explicit name, got %q", got)
	}

	unnamed := DeclaredProperty{Accessor: "Port"}
	if got := unnamed.Key(); got != "port" {
		t.Fatalf("expected lowercased accessor, got %q", got)
	}
}

func TestCompositeDescriptor_NeverExposesProperties(t *testing.T) {
	leaf := NewBaseDescriptor("member")
	composite := NewCompositeDescriptor("cluster", "mysql", leaf)

	if props := composite.Properties(); len(props) != 0 {
		t.Fatalf("expected no properties on composite, got %d", len(props))
	}
	if got := composite.Constituents(); len(got) != 1 || got[0].ID() != "member" {
		t.Fatalf("unexpected constituents: %v", got)
	}
}
