package localconfig

import (
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-cloudbind/core"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const (
	appIDKey         = "cloud.appId"
	serviceKeyPrefix = "cloud."
)

// Connector is a PlatformConnector backed by a local properties file, for
// running cloud-targeted applications outside any cloud. Each `cloud.<id>`
// entry with a URI value becomes one raw service descriptor tagged with the
// URI scheme.
type Connector struct {
	resolver   *PropertiesFileResolver
	readFile   func(path string) ([]byte, error)
	logger     core.Logger
	instanceID string
}

type ConnectorOption func(*Connector)

func WithLogger(logger core.Logger) ConnectorOption {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithFileReader replaces the on-disk read, mainly for tests.
func WithFileReader(read func(path string) ([]byte, error)) ConnectorOption {
	return func(c *Connector) {
		c.readFile = read
	}
}

func NewConnector(resolver *PropertiesFileResolver, options ...ConnectorOption) *Connector {
	connector := &Connector{
		resolver:   resolver,
		readFile:   os.ReadFile,
		logger:     glog.Nop(),
		instanceID: uuid.NewString(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(connector)
	}
	return connector
}

// SetEnvironment forwards the cloud-level accessor to the file resolver,
// where it backs the properties-file override and template lookups.
func (c *Connector) SetEnvironment(env core.EnvironmentAccessor) {
	if c.resolver != nil {
		c.resolver.SetEnvironment(env)
	}
}

func (c *Connector) ApplicationInstanceInfo() (core.ApplicationInstanceInfo, error) {
	props := c.loadProperties()
	appID := strings.TrimSpace(props[appIDKey])
	if appID == "" {
		c.logger.Warn("no app id configured, using <unknown>")
		appID = "<unknown>"
	}
	return core.ApplicationInstanceInfo{
		AppID:      appID,
		InstanceID: c.instanceID,
	}, nil
}

func (c *Connector) RawServiceDescriptors() ([]core.RawDescriptor, error) {
	props := c.loadProperties()

	ids := make([]string, 0, len(props))
	for key := range props {
		if id, ok := serviceID(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	raws := make([]core.RawDescriptor, 0, len(ids))
	for _, id := range ids {
		value := strings.TrimSpace(props[serviceKeyPrefix+id])
		if value == "" {
			continue
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" {
			c.logger.Warn("skipping service with unparseable uri", "service_id", id)
			continue
		}
		raws = append(raws, core.RawDescriptor{
			ID:   id,
			Tag:  parsed.Scheme,
			Data: map[string]any{"uri": value},
		})
	}
	return raws, nil
}

func (c *Connector) loadProperties() map[string]string {
	if c == nil || c.resolver == nil {
		return map[string]string{}
	}
	path, ok := c.resolver.Locate()
	if !ok {
		c.logger.Warn("no cloud properties file found, treating environment as empty")
		return map[string]string{}
	}
	data, err := c.readFile(path)
	if err != nil {
		c.logger.Warn("cloud properties file is unreadable", "path", path, "error", err.Error())
		return map[string]string{}
	}
	props, err := parseProperties(data)
	if err != nil {
		c.logger.Warn("cloud properties file is malformed", "path", path, "error", err.Error())
		return map[string]string{}
	}
	return props
}

// serviceID extracts <id> from a cloud.<id> key. Keys with further dotted
// segments (cloud.appId aside, any namespaced settings) are not services.
func serviceID(key string) (string, bool) {
	if !strings.HasPrefix(key, serviceKeyPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(key, serviceKeyPrefix)
	if rest == "" || strings.Contains(rest, ".") {
		return "", false
	}
	switch serviceKeyPrefix + rest {
	case appIDKey, literalPathKey, templatePathKey:
		return "", false
	}
	return rest, true
}
