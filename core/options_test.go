package core

import (
	"context"
	"testing"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

func TestNewCloud_DefaultDependencies(t *testing.T) {
	cloud, err := NewCloud(Config{}, WithPlatformConnector(stubPlatformConnector{}))
	if err != nil {
		t.Fatalf("new cloud: %v", err)
	}
	if cloud.Resolver() == nil {
		t.Fatalf("expected default descriptor resolver")
	}
	if cloud.Creators() == nil {
		t.Fatalf("expected default creator registry")
	}
	if got := cloud.Config().PropertiesRoot; got != DefaultPropertiesRoot {
		t.Fatalf("expected default properties root, got %q", got)
	}
}

func TestNewCloud_ConfigAndOptionsOverrides(t *testing.T) {
	configProvider := &fixedConfigProvider{cfg: Config{PropertiesRoot: "from-provider"}}
	optionsResolver := &fixedOptionsResolver{cfg: Config{PropertiesRoot: "resolved"}}

	cloud, err := NewCloud(Config{PropertiesRoot: "runtime"},
		WithPlatformConnector(stubPlatformConnector{}),
		WithConfigProvider(configProvider),
		WithOptionsResolver(optionsResolver),
	)
	if err != nil {
		t.Fatalf("new cloud: %v", err)
	}
	if got := cloud.Config().PropertiesRoot; got != "resolved" {
		t.Fatalf("expected resolver output to win, got %q", got)
	}
}

func TestGoOptionsResolver_RuntimeLayerWins(t *testing.T) {
	resolver := GoOptionsResolver{}
	defaults := DefaultConfig()
	loaded := Config{PropertiesRoot: "loaded", Pool: PoolConfig{MaxOpenConns: 5}}
	runtime := Config{PropertiesRoot: "runtime"}

	resolved, err := resolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.PropertiesRoot != "runtime" {
		t.Fatalf("expected runtime layer to win, got %q", resolved.PropertiesRoot)
	}
	if resolved.Pool.MaxOpenConns != 5 {
		t.Fatalf("expected loaded pool setting to survive, got %d", resolved.Pool.MaxOpenConns)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected empty properties_root to be rejected")
	}
	if err := (Config{PropertiesRoot: "cloud", Pool: PoolConfig{MaxOpenConns: -1}}).Validate(); err == nil {
		t.Fatalf("expected negative pool size to be rejected")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
