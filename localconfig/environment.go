package localconfig

import "os"

// OSEnvironment reads process environment variables. It never fails on its
// own; the EnvironmentAccessor contract exists so sandboxed hosts can inject
// accessors that do.
type OSEnvironment struct{}

func (OSEnvironment) Env(key string) (string, error) {
	return os.Getenv(key), nil
}

// MapEnvironment is a fixed in-memory accessor, useful for tests and for
// callers that snapshot their environment up front.
type MapEnvironment map[string]string

func (m MapEnvironment) Env(key string) (string, error) {
	return m[key], nil
}
