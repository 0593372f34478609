package query

import (
	"context"

	"github.com/goliatone/go-cloudbind/core"
)

type DescriptorReader interface {
	ServiceDescriptor(id string) (core.Descriptor, error)
	ServiceDescriptors() ([]core.Descriptor, error)
	ServiceDescriptorsByConnectorType(connectorType core.TypeRef) ([]core.Descriptor, error)
	ServiceDescriptorsByKind(kind core.TypeRef) ([]core.Descriptor, error)
}

type PropertiesReader interface {
	Properties() (map[string]any, error)
}

type ConnectorFactory interface {
	Connector(ctx context.Context, serviceID string, connectorType core.TypeRef, config core.ConnectorConfig) (any, error)
}

type GetServiceDescriptorQuery struct {
	reader DescriptorReader
}

func NewGetServiceDescriptorQuery(reader DescriptorReader) *GetServiceDescriptorQuery {
	return &GetServiceDescriptorQuery{reader: reader}
}

func (q *GetServiceDescriptorQuery) Query(ctx context.Context, msg GetServiceDescriptorMessage) (core.Descriptor, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: descriptor reader is required")
	}
	return q.reader.ServiceDescriptor(msg.ServiceID)
}

type ListServiceDescriptorsQuery struct {
	reader DescriptorReader
}

func NewListServiceDescriptorsQuery(reader DescriptorReader) *ListServiceDescriptorsQuery {
	return &ListServiceDescriptorsQuery{reader: reader}
}

func (q *ListServiceDescriptorsQuery) Query(
	ctx context.Context,
	msg ListServiceDescriptorsMessage,
) ([]core.Descriptor, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: descriptor reader is required")
	}
	switch {
	case !msg.ConnectorType.IsZero():
		return q.reader.ServiceDescriptorsByConnectorType(msg.ConnectorType)
	case !msg.Kind.IsZero():
		return q.reader.ServiceDescriptorsByKind(msg.Kind)
	default:
		return q.reader.ServiceDescriptors()
	}
}

type GetCloudPropertiesQuery struct {
	reader PropertiesReader
}

func NewGetCloudPropertiesQuery(reader PropertiesReader) *GetCloudPropertiesQuery {
	return &GetCloudPropertiesQuery{reader: reader}
}

func (q *GetCloudPropertiesQuery) Query(ctx context.Context, msg GetCloudPropertiesMessage) (map[string]any, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: properties reader is required")
	}
	return q.reader.Properties()
}

type CreateConnectorQuery struct {
	factory ConnectorFactory
}

func NewCreateConnectorQuery(factory ConnectorFactory) *CreateConnectorQuery {
	return &CreateConnectorQuery{factory: factory}
}

func (q *CreateConnectorQuery) Query(ctx context.Context, msg CreateConnectorMessage) (any, error) {
	if q == nil || q.factory == nil {
		return nil, queryDependencyError("query: connector factory is required")
	}
	return q.factory.Connector(ctx, msg.ServiceID, msg.ConnectorType, msg.Config)
}
