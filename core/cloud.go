package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Cloud is the user-level access point to the application instance and its
// bound services. It resolves raw platform descriptors through the registered
// recognizers, flattens composites, matches descriptors to connector creators,
// and projects the resolved set into the cloud.* property namespace.
//
// Registration (recognizers, creators) happens during startup, strictly
// before any lookup; afterwards every method is a pure read over immutable
// registration data and safe for concurrent use.
type Cloud struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	connector       PlatformConnector
	environment     EnvironmentAccessor
	resolver        *DescriptorResolver
	creators        *CreatorRegistry
}

func NewCloud(cfg Config, options ...Option) (*Cloud, error) {
	builder := defaultCloudBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("cloudbind", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("cloudbind"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.resolver == nil {
		builder.resolver = NewDescriptorResolver()
	}
	if builder.creators == nil {
		builder.creators = NewCreatorRegistry()
	}
	if builder.connector == nil {
		return nil, builder.errorFactory("core: platform connector is required", goerrors.CategoryBadInput).
			WithTextCode(CloudErrorBadInput)
	}
	if builder.environment != nil {
		threadEnvironment(builder.environment, builder.connector, builder.creators)
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Cloud{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		connector:       builder.connector,
		environment:     builder.environment,
		resolver:        builder.resolver,
		creators:        builder.creators,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Cloud, error) {
	return NewCloud(cfg, options...)
}

// threadEnvironment hands the cloud-level environment accessor to every
// component that declares interest in it, current and future registrations
// alike.
func threadEnvironment(env EnvironmentAccessor, connector PlatformConnector, creators *CreatorRegistry) {
	if aware, ok := connector.(EnvironmentAware); ok {
		aware.SetEnvironment(env)
	}
	creators.SetEnvironment(env)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (c *Cloud) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Cloud) Resolver() *DescriptorResolver {
	if c == nil {
		return nil
	}
	return c.resolver
}

func (c *Cloud) Creators() *CreatorRegistry {
	if c == nil {
		return nil
	}
	return c.creators
}

// Environment returns the accessor threaded into environment-aware
// components, nil when the host never supplied one.
func (c *Cloud) Environment() EnvironmentAccessor {
	if c == nil {
		return nil
	}
	return c.environment
}

func (c *Cloud) ApplicationInstanceInfo() (ApplicationInstanceInfo, error) {
	if c == nil || c.connector == nil {
		return ApplicationInstanceInfo{}, c.newError("core: cloud is not configured", goerrors.CategoryInternal, CloudErrorInternal)
	}
	info, err := c.connector.ApplicationInstanceInfo()
	if err != nil {
		return ApplicationInstanceInfo{}, c.mapError(err)
	}
	return info, nil
}

// ServiceDescriptors resolves every raw platform descriptor and flattens
// composites into a leaf-only sequence, preserving pre-order.
func (c *Cloud) ServiceDescriptors() ([]Descriptor, error) {
	startedAt := time.Now()
	descriptors, err := c.serviceDescriptors()
	c.observeOperation(context.Background(), startedAt, "resolve_descriptors", err, map[string]any{
		"count": len(descriptors),
	})
	return descriptors, err
}

func (c *Cloud) serviceDescriptors() ([]Descriptor, error) {
	if c == nil || c.connector == nil {
		return nil, c.newError("core: cloud is not configured", goerrors.CategoryInternal, CloudErrorInternal)
	}
	raws, err := c.connector.RawServiceDescriptors()
	if err != nil {
		return nil, c.mapError(err)
	}
	resolved, err := c.resolver.Resolve(raws)
	if err != nil {
		return nil, c.mapError(err)
	}
	flattened, err := Flatten(resolved)
	if err != nil {
		return nil, c.mapError(err)
	}
	return flattened, nil
}

func (c *Cloud) ServiceDescriptor(serviceID string) (Descriptor, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, c.newError("core: service id is required", goerrors.CategoryBadInput, CloudErrorBadInput)
	}
	descriptors, err := c.serviceDescriptors()
	if err != nil {
		return nil, err
	}
	for _, descriptor := range descriptors {
		if descriptor.ID() == serviceID {
			return descriptor, nil
		}
	}
	return nil, c.mapError(NotFoundError(fmt.Sprintf("with id %q", serviceID)))
}

// ServiceDescriptorsByConnectorType returns the descriptors that some
// registered creator could turn into the given connector type.
func (c *Cloud) ServiceDescriptorsByConnectorType(connectorType TypeRef) ([]Descriptor, error) {
	descriptors, err := c.serviceDescriptors()
	if err != nil {
		return nil, err
	}
	matching := make([]Descriptor, 0, len(descriptors))
	for _, descriptor := range descriptors {
		if c.creators.Has(connectorType, descriptor) {
			matching = append(matching, descriptor)
		}
	}
	return matching, nil
}

// ServiceDescriptorsByKind filters on the descriptor kind alone, covariantly:
// a descriptor matches when the requested kind accepts its actual kind.
func (c *Cloud) ServiceDescriptorsByKind(kind TypeRef) ([]Descriptor, error) {
	descriptors, err := c.serviceDescriptors()
	if err != nil {
		return nil, err
	}
	matching := make([]Descriptor, 0, len(descriptors))
	for _, descriptor := range descriptors {
		if kind.AssignableFrom(descriptor.Kind()) {
			matching = append(matching, descriptor)
		}
	}
	return matching, nil
}

func (c *Cloud) SingletonServiceDescriptorByKind(kind TypeRef) (Descriptor, error) {
	matching, err := c.ServiceDescriptorsByKind(kind)
	if err != nil {
		return nil, err
	}
	if len(matching) != 1 {
		return nil, c.mapError(NotUniqueError(kind, len(matching)))
	}
	return matching[0], nil
}

// Connector resolves the descriptor for serviceID and builds a connector of
// the requested type through the first matching registered creator.
func (c *Cloud) Connector(ctx context.Context, serviceID string, connectorType TypeRef, config ConnectorConfig) (any, error) {
	startedAt := time.Now()
	descriptor, err := c.ServiceDescriptor(serviceID)
	if err != nil {
		return nil, err
	}
	connector, err := c.descriptorConnector(ctx, descriptor, connectorType, config)
	c.observeOperation(ctx, startedAt, "create_connector", err, map[string]any{
		"service_id":     serviceID,
		"connector_type": connectorType.String(),
	})
	return connector, err
}

// DescriptorConnector builds a connector from an already resolved descriptor.
func (c *Cloud) DescriptorConnector(ctx context.Context, descriptor Descriptor, connectorType TypeRef, config ConnectorConfig) (any, error) {
	startedAt := time.Now()
	connector, err := c.descriptorConnector(ctx, descriptor, connectorType, config)
	c.observeOperation(ctx, startedAt, "create_connector", err, map[string]any{
		"service_id":     descriptorID(descriptor),
		"connector_type": connectorType.String(),
	})
	return connector, err
}

// SingletonConnector builds a connector from the single descriptor matching
// the connector type; zero or several matches fail with a not-unique error.
func (c *Cloud) SingletonConnector(ctx context.Context, connectorType TypeRef, config ConnectorConfig) (any, error) {
	matching, err := c.ServiceDescriptorsByConnectorType(connectorType)
	if err != nil {
		return nil, err
	}
	if len(matching) != 1 {
		return nil, c.mapError(NotUniqueError(connectorType, len(matching)))
	}
	return c.DescriptorConnector(ctx, matching[0], connectorType, config)
}

func (c *Cloud) descriptorConnector(ctx context.Context, descriptor Descriptor, connectorType TypeRef, config ConnectorConfig) (any, error) {
	if descriptor == nil {
		return nil, c.newError("core: descriptor is required", goerrors.CategoryBadInput, CloudErrorBadInput)
	}
	creator, err := c.creators.Require(connectorType, descriptor)
	if err != nil {
		return nil, c.mapError(err)
	}
	connector, err := creator.Create(ctx, descriptor, config)
	if err != nil {
		return nil, c.mapError(CreationFailedError(descriptor.ID(), err))
	}
	return connector, nil
}

// Properties projects the application instance info and every resolved
// descriptor into the flattened cloud.* namespace.
func (c *Cloud) Properties() (map[string]any, error) {
	descriptors, err := c.serviceDescriptors()
	if err != nil {
		return nil, err
	}
	info, err := c.ApplicationInstanceInfo()
	if err != nil {
		return nil, err
	}

	root := c.config.PropertiesRoot
	projected := ProjectServices(root, descriptors)
	for key, value := range ProjectApplication(root, info) {
		projected[key] = value
	}
	return projected, nil
}

// newError builds a cloud error through the configured factory, so hosts
// that inject their own ErrorFactory see it used for every error this type
// originates.
func (c *Cloud) newError(message string, category goerrors.Category, textCode string) error {
	factory := ErrorFactory(goerrors.New)
	if c != nil && c.errorFactory != nil {
		factory = c.errorFactory
	}
	return factory(message, category).WithTextCode(textCode)
}

func (c *Cloud) mapError(err error) error {
	if err == nil {
		return nil
	}
	if c == nil || c.errorMapper == nil {
		return err
	}
	mapped := c.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func descriptorID(descriptor Descriptor) string {
	if descriptor == nil {
		return ""
	}
	return descriptor.ID()
}
