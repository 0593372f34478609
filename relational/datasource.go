package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-cloudbind/core"
	glog "github.com/goliatone/go-logger/glog"
)

// TypeDataSource is the connector type produced by DataSourceCreator.
var TypeDataSource = core.NewTypeRef("datasource")

// DSNDataSource is the unpooled fallback connector: it carries the driver
// name and decoded DSN and opens a fresh handle on demand.
type DSNDataSource struct {
	DriverName string
	DSN        string
}

func (d DSNDataSource) Open() (*sql.DB, error) {
	return sql.Open(d.DriverName, d.DSN)
}

// DataSourceCreator produces datasource connectors from relational
// descriptors, delegating pooling to a Chain. When no pooling provider can
// serve it logs a warning and hands back an unpooled DSNDataSource, so a
// bound database always yields a usable connector as long as a driver
// exists.
type DataSourceCreator struct {
	chain  *Chain
	logger core.Logger
}

type DataSourceCreatorOption func(*DataSourceCreator)

func WithCreatorLogger(logger core.Logger) DataSourceCreatorOption {
	return func(c *DataSourceCreator) {
		c.logger = logger
	}
}

func NewDataSourceCreator(chain *Chain, options ...DataSourceCreatorOption) *DataSourceCreator {
	creator := &DataSourceCreator{
		chain:  chain,
		logger: glog.Nop(),
	}
	if creator.chain == nil {
		creator.chain = NewChain()
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(creator)
	}
	return creator
}

// SetEnvironment forwards the cloud-level accessor to the pooling chain,
// where it backs the driver-override lookup.
func (c *DataSourceCreator) SetEnvironment(env core.EnvironmentAccessor) {
	c.chain.SetEnvironment(env)
}

func (c *DataSourceCreator) ConnectorType() core.TypeRef  { return TypeDataSource }
func (c *DataSourceCreator) DescriptorKind() core.TypeRef { return KindRelational }

func (c *DataSourceCreator) Create(ctx context.Context, descriptor core.Descriptor, config core.ConnectorConfig) (any, error) {
	relDescriptor, ok := descriptor.(*Descriptor)
	if !ok {
		return nil, fmt.Errorf("relational: descriptor %q is not a relational descriptor", descriptor.ID())
	}

	connector, driverName, pooled, err := c.chain.Create(relDescriptor, config)
	if err != nil {
		return nil, err
	}
	if pooled {
		return connector, nil
	}

	c.logger.Warn("no pooling provider available, connection pooling is not in effect",
		"service_id", relDescriptor.ID())
	return DSNDataSource{DriverName: driverName, DSN: relDescriptor.DSN()}, nil
}
