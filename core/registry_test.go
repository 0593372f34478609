package core

import (
	"context"
	"testing"
)

var (
	kindSQL      = NewTypeRef("sql", KindService)
	kindAnything = KindService
	typePool     = NewTypeRef("pool")
	typeResource = NewTypeRef("resource")
	typePooled   = NewTypeRef("pooled-resource", typeResource)
)

type stubCreator struct {
	name          string
	connectorType TypeRef
	kind          TypeRef
}

func (c stubCreator) ConnectorType() TypeRef  { return c.connectorType }
func (c stubCreator) DescriptorKind() TypeRef { return c.kind }

func (c stubCreator) Create(context.Context, Descriptor, ConnectorConfig) (any, error) {
	return c.name, nil
}

func TestCreatorRegistry_RegistrationOrderBreaksTies(t *testing.T) {
	registry := NewCreatorRegistry()
	if err := registry.Register(stubCreator{name: "sql-first", connectorType: typePool, kind: kindSQL}); err != nil {
		t.Fatalf("register first creator: %v", err)
	}
	if err := registry.Register(stubCreator{name: "catch-all", connectorType: typePool, kind: kindAnything}); err != nil {
		t.Fatalf("register second creator: %v", err)
	}

	descriptor := NewDescriptor("db", kindSQL, "sql")
	creator, ok := registry.Find(typePool, descriptor)
	if !ok {
		t.Fatalf("expected a creator match")
	}
	if creator.(stubCreator).name != "sql-first" {
		t.Fatalf("expected registration order tie-break, got %q", creator.(stubCreator).name)
	}
}

func TestCreatorRegistry_CovariantDescriptorMatch(t *testing.T) {
	mysql := NewTypeRef("mysql", kindSQL)
	registry := NewCreatorRegistry()
	if err := registry.Register(stubCreator{name: "sql", connectorType: typePool, kind: kindSQL}); err != nil {
		t.Fatalf("register creator: %v", err)
	}

	if !registry.Has(typePool, NewDescriptor("db", mysql, "mysql")) {
		t.Fatalf("expected creator accepting sql to accept a mysql descriptor")
	}
	if registry.Has(typePool, NewBaseDescriptor("generic")) {
		t.Fatalf("did not expect creator accepting sql to accept a generic descriptor")
	}
}

func TestCreatorRegistry_SupertypeConnectorMatch(t *testing.T) {
	registry := NewCreatorRegistry()
	if err := registry.Register(stubCreator{name: "pooled", connectorType: typePooled, kind: kindAnything}); err != nil {
		t.Fatalf("register creator: %v", err)
	}

	descriptor := NewBaseDescriptor("svc")
	if !registry.Has(typeResource, descriptor) {
		t.Fatalf("expected a request for the abstraction to accept the concrete producer")
	}
	if registry.Has(typePool, descriptor) {
		t.Fatalf("did not expect an unrelated connector type to match")
	}
}

func TestCreatorRegistry_WildcardConnectorTypeMatchesAll(t *testing.T) {
	registry := NewCreatorRegistry()
	if err := registry.Register(stubCreator{name: "any", connectorType: typePool, kind: kindSQL}); err != nil {
		t.Fatalf("register creator: %v", err)
	}

	var wildcard TypeRef
	if !registry.Has(wildcard, NewDescriptor("db", kindSQL, "sql")) {
		t.Fatalf("expected wildcard connector type to match")
	}
	if !registry.Has(typePool, nil) {
		t.Fatalf("expected nil descriptor to wildcard the descriptor side")
	}
}

func TestCreatorRegistry_RequireNamesBothSides(t *testing.T) {
	registry := NewCreatorRegistry()
	descriptor := NewDescriptor("customerDb", kindSQL, "sql")

	_, err := registry.Require(typePool, descriptor)
	if err == nil {
		t.Fatalf("expected no-suitable-creator error")
	}
	if !hasTextCode(err, CloudErrorNoSuitableCreator) {
		t.Fatalf("expected %s, got %v", CloudErrorNoSuitableCreator, err)
	}
	for _, fragment := range []string{"customerDb", "pool", "sql"} {
		if !containsFragment(err.Error(), fragment) {
			t.Fatalf("expected error to mention %q, got %q", fragment, err.Error())
		}
	}
}

func TestCreatorRegistry_RejectsNilCreator(t *testing.T) {
	registry := NewCreatorRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil registration to fail")
	}
}

func TestCreatorRegistry_SetEnvironmentReachesExistingCreators(t *testing.T) {
	registry := NewCreatorRegistry()
	creator := &environmentAwareCreator{stubCreator: stubCreator{name: "aware", connectorType: typePool, kind: kindSQL}}
	if err := registry.Register(creator); err != nil {
		t.Fatalf("register creator: %v", err)
	}

	env := &recordingEnvironment{}
	registry.SetEnvironment(env)
	if creator.env == nil {
		t.Fatalf("expected an already-registered creator to receive the accessor")
	}
}
