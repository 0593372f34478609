package relational

import "github.com/goliatone/go-cloudbind/core"

var (
	_ core.Descriptor       = (*Descriptor)(nil)
	_ core.ConnectorCreator = (*DataSourceCreator)(nil)
	_ core.EnvironmentAware = (*DataSourceCreator)(nil)
)
