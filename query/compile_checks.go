package query

import (
	"github.com/goliatone/go-cloudbind/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetServiceDescriptorMessage, core.Descriptor]     = (*GetServiceDescriptorQuery)(nil)
	_ gocmd.Querier[ListServiceDescriptorsMessage, []core.Descriptor] = (*ListServiceDescriptorsQuery)(nil)
	_ gocmd.Querier[GetCloudPropertiesMessage, map[string]any]        = (*GetCloudPropertiesQuery)(nil)
	_ gocmd.Querier[CreateConnectorMessage, any]                      = (*CreateConnectorQuery)(nil)
)
