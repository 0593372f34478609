package query

import (
	"strings"

	"github.com/goliatone/go-cloudbind/core"
)

const (
	TypeGetServiceDescriptor   = "cloudbind.query.descriptor.get"
	TypeListServiceDescriptors = "cloudbind.query.descriptor.list"
	TypeGetCloudProperties     = "cloudbind.query.properties.get"
	TypeCreateConnector        = "cloudbind.query.connector.create"
)

type GetServiceDescriptorMessage struct {
	ServiceID string
}

func (GetServiceDescriptorMessage) Type() string { return TypeGetServiceDescriptor }

func (m GetServiceDescriptorMessage) Validate() error {
	if strings.TrimSpace(m.ServiceID) == "" {
		return queryValidationError("service_id", "service id is required")
	}
	return nil
}

// ListServiceDescriptorsMessage lists resolved leaf descriptors, optionally
// narrowed by connector type or by descriptor kind. At most one filter may
// be set; zero TypeRefs mean no filtering.
type ListServiceDescriptorsMessage struct {
	ConnectorType core.TypeRef
	Kind          core.TypeRef
}

func (ListServiceDescriptorsMessage) Type() string { return TypeListServiceDescriptors }

func (m ListServiceDescriptorsMessage) Validate() error {
	if !m.ConnectorType.IsZero() && !m.Kind.IsZero() {
		return queryValidationError("kind", "connector type and kind filters are mutually exclusive")
	}
	return nil
}

type GetCloudPropertiesMessage struct{}

func (GetCloudPropertiesMessage) Type() string { return TypeGetCloudProperties }

func (GetCloudPropertiesMessage) Validate() error { return nil }

type CreateConnectorMessage struct {
	ServiceID     string
	ConnectorType core.TypeRef
	Config        core.ConnectorConfig
}

func (CreateConnectorMessage) Type() string { return TypeCreateConnector }

func (m CreateConnectorMessage) Validate() error {
	if strings.TrimSpace(m.ServiceID) == "" {
		return queryValidationError("service_id", "service id is required")
	}
	if m.ConnectorType.IsZero() {
		return queryValidationError("connector_type", "connector type is required")
	}
	return nil
}
