package relational

import (
	"database/sql"
	"strings"

	"github.com/goliatone/go-cloudbind/core"
	glog "github.com/goliatone/go-logger/glog"
)

// DriverOverrideEnvKey names a database/sql driver explicitly, bypassing
// candidate scanning entirely.
const DriverOverrideEnvKey = "CLOUD_DATABASE_DRIVER"

// PooledProvider is one alternative pooling implementation. Build returns
// (connector, true) on success and (nil, false) when the provider cannot
// serve in the current environment; unavailability is never an error.
type PooledProvider struct {
	Name  string
	Build func(descriptor *Descriptor, config core.ConnectorConfig, driverName string) (any, bool)
}

// Chain tries pooling providers in fixed order and returns the first
// connector produced. Provider registration happens at construction; Create
// is a pure read afterwards and is safe for concurrent use.
type Chain struct {
	providers         []PooledProvider
	env               core.EnvironmentAccessor
	logger            core.Logger
	registeredDrivers func() []string
}

type ChainOption func(*Chain)

func WithProviders(providers ...PooledProvider) ChainOption {
	return func(c *Chain) {
		c.providers = providers
	}
}

func WithEnvironment(env core.EnvironmentAccessor) ChainOption {
	return func(c *Chain) {
		c.env = env
	}
}

func WithChainLogger(logger core.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// WithDriverLister replaces the sql.Drivers lookup, mainly for tests.
func WithDriverLister(list func() []string) ChainOption {
	return func(c *Chain) {
		c.registeredDrivers = list
	}
}

// SetEnvironment defaults the override-lookup accessor for chains built
// without one. An accessor fixed at construction stays in place.
func (c *Chain) SetEnvironment(env core.EnvironmentAccessor) {
	if c.env == nil {
		c.env = env
	}
}

func NewChain(options ...ChainOption) *Chain {
	chain := &Chain{
		providers:         DefaultProviders(),
		logger:            glog.Nop(),
		registeredDrivers: sql.Drivers,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(chain)
	}
	return chain
}

// Create resolves a driver, filters providers through the config allow-list
// and returns the first pooled connector produced, along with the selected
// driver name so fallback paths reuse it. A false third return means pooling
// is unavailable and the caller must fall back; the only error is a missing
// driver, which is fatal.
func (c *Chain) Create(descriptor *Descriptor, config core.ConnectorConfig) (any, string, bool, error) {
	driverName, err := c.selectDriver(descriptor)
	if err != nil {
		return nil, "", false, err
	}

	candidates := c.filterProviders(config.PooledProviders)
	if len(candidates) == 0 && len(c.providers) > 0 {
		c.logger.Warn("pooled provider allow-list matched no provider, pooling disabled",
			"service_id", descriptor.ID(),
			"allow_list", strings.Join(config.PooledProviders, ","))
		return nil, driverName, false, nil
	}

	for _, provider := range candidates {
		if connector, ok := provider.Build(descriptor, config, driverName); ok {
			return connector, driverName, true, nil
		}
	}
	return nil, driverName, false, nil
}

// filterProviders keeps providers whose name contains any allow-list
// substring, preserving registration order. A nil allow-list keeps all.
func (c *Chain) filterProviders(allowList []string) []PooledProvider {
	if allowList == nil {
		return c.providers
	}
	filtered := make([]PooledProvider, 0, len(c.providers))
	for _, provider := range c.providers {
		for _, fragment := range allowList {
			if strings.Contains(provider.Name, fragment) {
				filtered = append(filtered, provider)
				break
			}
		}
	}
	return filtered
}

// selectDriver picks the database/sql driver before any provider attempt:
// the environment override wins outright, then the first registered name
// from the kind's candidate list. No match is fatal, not retried.
func (c *Chain) selectDriver(descriptor *Descriptor) (string, error) {
	if override, ok := c.lookupOverride(); ok {
		return override, nil
	}
	registered := map[string]bool{}
	for _, name := range c.registeredDrivers() {
		registered[name] = true
	}
	for _, candidate := range driverCandidates(descriptor.Kind()) {
		if registered[candidate] {
			return candidate, nil
		}
	}
	return "", core.NoSuitableDriverError(descriptor.ID())
}

func (c *Chain) lookupOverride() (string, bool) {
	if c.env == nil {
		return "", false
	}
	value, err := c.env.Env(DriverOverrideEnvKey)
	if err != nil {
		// Denied environment access degrades to unset.
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func driverCandidates(kind core.TypeRef) []string {
	switch {
	case KindMySQL.AssignableFrom(kind):
		return []string{"mysql"}
	case KindPostgres.AssignableFrom(kind):
		return []string{"postgres", "pgx"}
	default:
		return []string{"postgres", "mysql", "sqlite3"}
	}
}
