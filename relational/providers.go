package relational

import (
	"database/sql"
	"time"

	"github.com/goliatone/go-cloudbind/core"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// Provider names. Allow-list fragments match against these with a substring
// check, so "Bun" selects both the bun and persistence providers.
const (
	BunProviderName         = "BunPooledProvider"
	SQLProviderName         = "SQLPooledProvider"
	PersistenceProviderName = "PersistenceBunPooledProvider"
)

// DefaultProviders returns the fixed chain order: bun first, plain
// database/sql second, the persistence client last.
func DefaultProviders() []PooledProvider {
	return []PooledProvider{
		BunPooledProvider(),
		SQLPooledProvider(),
		PersistencePooledProvider(),
	}
}

// BunPooledProvider wraps the pooled handle in a *bun.DB. It needs a dialect
// for the selected driver; drivers without one make the provider absent so
// the chain can move on.
func BunPooledProvider() PooledProvider {
	return PooledProvider{
		Name: BunProviderName,
		Build: func(descriptor *Descriptor, config core.ConnectorConfig, driverName string) (any, bool) {
			dialect, ok := dialectFor(driverName)
			if !ok {
				return nil, false
			}
			sqlDB, ok := openPooled(descriptor, config, driverName)
			if !ok {
				return nil, false
			}
			return bun.NewDB(sqlDB, dialect), true
		},
	}
}

// SQLPooledProvider returns the configured *sql.DB directly.
func SQLPooledProvider() PooledProvider {
	return PooledProvider{
		Name: SQLProviderName,
		Build: func(descriptor *Descriptor, config core.ConnectorConfig, driverName string) (any, bool) {
			sqlDB, ok := openPooled(descriptor, config, driverName)
			if !ok {
				return nil, false
			}
			return sqlDB, true
		},
	}
}

// PersistencePooledProvider wraps the handle in a go-persistence-bun client,
// which pings the database during construction. A failed ping makes the
// provider absent rather than failing the chain.
func PersistencePooledProvider() PooledProvider {
	return PooledProvider{
		Name: PersistenceProviderName,
		Build: func(descriptor *Descriptor, config core.ConnectorConfig, driverName string) (any, bool) {
			dialect, ok := dialectFor(driverName)
			if !ok {
				return nil, false
			}
			sqlDB, ok := openPooled(descriptor, config, driverName)
			if !ok {
				return nil, false
			}
			client, err := persistence.New(persistenceConfig{
				driver: driverName,
				server: descriptor.DSN(),
			}, sqlDB, dialect)
			if err != nil {
				_ = sqlDB.Close()
				return nil, false
			}
			return client, true
		},
	}
}

func openPooled(descriptor *Descriptor, config core.ConnectorConfig, driverName string) (*sql.DB, bool) {
	sqlDB, err := sql.Open(driverName, descriptor.DSN())
	if err != nil {
		return nil, false
	}
	if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}
	return sqlDB, true
}

func dialectFor(driverName string) (schema.Dialect, bool) {
	switch driverName {
	case "postgres", "pgx":
		return pgdialect.New(), true
	case "sqlite3", "sqlite":
		return sqlitedialect.New(), true
	default:
		return nil, false
	}
}

type persistenceConfig struct {
	driver string
	server string
}

func (c persistenceConfig) GetDebug() bool                { return false }
func (c persistenceConfig) GetDriver() string             { return c.driver }
func (c persistenceConfig) GetServer() string             { return c.server }
func (c persistenceConfig) GetPingTimeout() time.Duration { return time.Second }
func (c persistenceConfig) GetOtelIdentifier() string     { return "cloudbind" }
