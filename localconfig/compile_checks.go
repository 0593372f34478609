package localconfig

import "github.com/goliatone/go-cloudbind/core"

var (
	_ core.PlatformConnector   = (*Connector)(nil)
	_ core.EnvironmentAware    = (*Connector)(nil)
	_ core.EnvironmentAccessor = OSEnvironment{}
	_ core.EnvironmentAccessor = MapEnvironment{}
)
