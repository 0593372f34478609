package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// PlatformConnector is the platform-discovery collaborator: it knows how to
// read the hosting environment's raw service bindings and application
// identity. Parsing any specific platform's encoding lives behind this
// boundary, outside the core.
type PlatformConnector interface {
	ApplicationInstanceInfo() (ApplicationInstanceInfo, error)
	RawServiceDescriptors() ([]RawDescriptor, error)
}

// EnvironmentAccessor abstracts system-level key lookups. Implementations may
// fail when the host sandbox denies access; callers in this module always
// degrade such failures to "not set" instead of propagating them.
type EnvironmentAccessor interface {
	Env(key string) (string, error)
}

// EnvironmentAware components receive the cloud-level environment accessor
// during startup wiring, before any lookup or creation call.
type EnvironmentAware interface {
	SetEnvironment(env EnvironmentAccessor)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}
