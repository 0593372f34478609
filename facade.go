package cloudbind

import (
	"fmt"

	"github.com/goliatone/go-cloudbind/core"
	cloudquery "github.com/goliatone/go-cloudbind/query"
)

var _ CloudReader = (*core.Cloud)(nil)

// CloudReader is the query surface the facade wires handlers against.
// *core.Cloud satisfies it.
type CloudReader interface {
	cloudquery.DescriptorReader
	cloudquery.PropertiesReader
	cloudquery.ConnectorFactory
}

type Queries struct {
	GetServiceDescriptor   *cloudquery.GetServiceDescriptorQuery
	ListServiceDescriptors *cloudquery.ListServiceDescriptorsQuery
	GetCloudProperties     *cloudquery.GetCloudPropertiesQuery
	CreateConnector        *cloudquery.CreateConnectorQuery
}

// Facade bundles the query handlers around one cloud instance so hosts can
// register them on a dispatcher in one move.
type Facade struct {
	cloud   CloudReader
	queries Queries
}

func NewFacade(cloud CloudReader) (*Facade, error) {
	if cloud == nil {
		return nil, fmt.Errorf("cloudbind: cloud instance is required")
	}

	facade := &Facade{cloud: cloud}
	facade.queries = Queries{
		GetServiceDescriptor:   cloudquery.NewGetServiceDescriptorQuery(cloud),
		ListServiceDescriptors: cloudquery.NewListServiceDescriptorsQuery(cloud),
		GetCloudProperties:     cloudquery.NewGetCloudPropertiesQuery(cloud),
		CreateConnector:        cloudquery.NewCreateConnectorQuery(cloud),
	}
	return facade, nil
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Cloud() CloudReader {
	if f == nil {
		return nil
	}
	return f.cloud
}
