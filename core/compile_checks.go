package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Logger          = glog.Nop()
	_ LoggerProvider  = glog.ProviderFromLogger(glog.Nop())
	_ MetricsRecorder = NopMetricsRecorder{}
	_ Descriptor      = (*BaseDescriptor)(nil)
	_ Composite       = (*CompositeDescriptor)(nil)
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
)
