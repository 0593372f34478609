package core

import "strings"

func containsFragment(haystack, fragment string) bool {
	return strings.Contains(haystack, fragment)
}

type stubPlatformConnector struct {
	info ApplicationInstanceInfo
	raws []RawDescriptor
	err  error
}

func (c stubPlatformConnector) ApplicationInstanceInfo() (ApplicationInstanceInfo, error) {
	return c.info, nil
}

func (c stubPlatformConnector) RawServiceDescriptors() ([]RawDescriptor, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.raws, nil
}
