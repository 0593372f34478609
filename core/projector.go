package core

import "strings"

const (
	servicesSegment    = "services"
	applicationSegment = "application"
)

// ProjectServices flattens descriptor properties into a dotted-key namespace
// under <root>.services. Every descriptor projects under its id; a label
// shared by exactly one descriptor additionally aliases the same properties
// under the label. Labels shared by several descriptors never alias, since
// the ambiguity must stay visible to the caller.
func ProjectServices(root string, descriptors []Descriptor) map[string]any {
	labelCounts := map[string]int{}
	for _, descriptor := range descriptors {
		if label := descriptor.Label(); label != "" {
			labelCounts[label]++
		}
	}

	lead := namespaceRoot(root) + "." + servicesSegment + "."
	projected := map[string]any{}
	for _, descriptor := range descriptors {
		projectInto(projected, lead+descriptor.ID(), descriptor)
		if label := descriptor.Label(); label != "" && labelCounts[label] == 1 {
			projectInto(projected, lead+label, descriptor)
		}
	}
	return projected
}

// ProjectApplication exposes app-id and instance-id plus any platform extras
// under <root>.application. Nil-valued extras are skipped.
func ProjectApplication(root string, info ApplicationInstanceInfo) map[string]any {
	lead := namespaceRoot(root) + "." + applicationSegment + "."
	projected := map[string]any{
		lead + "app-id":      info.AppID,
		lead + "instance-id": info.InstanceID,
	}
	for key, value := range info.Properties {
		if value == nil {
			continue
		}
		projected[lead+key] = value
	}
	return projected
}

func projectInto(out map[string]any, prefix string, descriptor Descriptor) {
	for _, prop := range descriptor.Properties() {
		if prop.Value == nil {
			continue
		}
		key := prefix
		if category := strings.TrimSpace(prop.Category); category != "" {
			key += "." + category
		}
		key += "." + prop.Key()
		out[key] = prop.Value
	}
}

func namespaceRoot(root string) string {
	root = strings.Trim(strings.TrimSpace(root), ".")
	if root == "" {
		return DefaultPropertiesRoot
	}
	return root
}
