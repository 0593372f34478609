package cloudbind

import "github.com/goliatone/go-cloudbind/core"

type Config = core.Config

type PoolConfig = core.PoolConfig

type ConnectorConfig = core.ConnectorConfig

type Option = core.Option

type Cloud = core.Cloud

type TypeRef = core.TypeRef

type Descriptor = core.Descriptor
type Composite = core.Composite
type RawDescriptor = core.RawDescriptor
type DeclaredProperty = core.DeclaredProperty
type ApplicationInstanceInfo = core.ApplicationInstanceInfo

type Recognizer = core.Recognizer
type DescriptorResolver = core.DescriptorResolver
type ConnectorCreator = core.ConnectorCreator
type CreatorRegistry = core.CreatorRegistry

type PlatformConnector = core.PlatformConnector
type EnvironmentAccessor = core.EnvironmentAccessor
type EnvironmentAware = core.EnvironmentAware

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithPlatformConnector = core.WithPlatformConnector
	WithEnvironment       = core.WithEnvironment
	WithResolver          = core.WithResolver
	WithCreatorRegistry   = core.WithCreatorRegistry
)

var NewTypeRef = core.NewTypeRef

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewCloud(cfg Config, opts ...Option) (*Cloud, error) {
	return core.NewCloud(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Cloud, error) {
	return core.Setup(cfg, opts...)
}
