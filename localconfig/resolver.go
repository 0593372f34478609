package localconfig

import (
	"io/fs"
	"regexp"
	"strings"

	"github.com/goliatone/go-cloudbind/core"
)

const (
	// PropertiesFileEnvKey overrides every other discovery source when set;
	// its value IS the config file path.
	PropertiesFileEnvKey = "CLOUD_PROPERTIES_FILE"

	// DefaultResourceName is the bundled resource probed when no explicit
	// resource name is configured.
	DefaultResourceName = "cloudbind.properties"

	literalPathKey  = "cloud.propertiesFile"
	templatePathKey = "cloud.propertiesFileTemplate"
)

var templateVariablePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// PropertiesFileResolver discovers the external cloud properties file.
// Precedence is fixed: environment override, then the bundled literal key,
// then the bundled template key. Environment lookup failures degrade to
// "not set"; a sandbox denying reads is a recoverable condition here, not an
// error the caller should see.
type PropertiesFileResolver struct {
	env          core.EnvironmentAccessor
	fsys         fs.FS
	resourceName string
}

func NewPropertiesFileResolver(env core.EnvironmentAccessor, fsys fs.FS, resourceName string) *PropertiesFileResolver {
	if env == nil {
		env = OSEnvironment{}
	}
	resourceName = strings.TrimSpace(resourceName)
	if resourceName == "" {
		resourceName = DefaultResourceName
	}
	return &PropertiesFileResolver{env: env, fsys: fsys, resourceName: resourceName}
}

// SetEnvironment replaces the accessor consulted for the override key and
// template variables, letting the owning cloud thread its own accessor in.
func (r *PropertiesFileResolver) SetEnvironment(env core.EnvironmentAccessor) {
	if env != nil {
		r.env = env
	}
}

// Locate returns the config file path and whether one was found. The check
// order within a pass is always override, literal, template; first success
// wins and no merging happens across sources.
func (r *PropertiesFileResolver) Locate() (string, bool) {
	if path, ok := r.FromEnvironment(); ok {
		return path, true
	}
	return r.FromResource()
}

// FromEnvironment checks only the override key.
func (r *PropertiesFileResolver) FromEnvironment() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.lookup(PropertiesFileEnvKey)
}

// FromResource checks only the bundled resource: the literal key first, the
// template key second. A template with any unresolvable placeholder is
// treated as wholly absent, never as a partial path.
func (r *PropertiesFileResolver) FromResource() (string, bool) {
	if r == nil || r.fsys == nil {
		return "", false
	}
	data, err := fs.ReadFile(r.fsys, r.resourceName)
	if err != nil {
		return "", false
	}
	props, err := parseProperties(data)
	if err != nil {
		return "", false
	}

	if literal := strings.TrimSpace(props[literalPathKey]); literal != "" {
		return literal, true
	}
	if template := strings.TrimSpace(props[templatePathKey]); template != "" {
		return r.expandTemplate(template)
	}
	return "", false
}

func (r *PropertiesFileResolver) expandTemplate(template string) (string, bool) {
	resolved := true
	expanded := templateVariablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := templateVariablePattern.FindStringSubmatch(match)[1]
		value, ok := r.lookup(name)
		if !ok {
			resolved = false
			return match
		}
		return value
	})
	if !resolved {
		return "", false
	}
	return expanded, true
}

func (r *PropertiesFileResolver) lookup(key string) (string, bool) {
	value, err := r.env.Env(key)
	if err != nil {
		// Denied environment access degrades to unset.
		return "", false
	}
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}
