package localconfig

import (
	"fmt"
	"testing"
	"testing/fstest"
)

func newTestConnector(t *testing.T, target string) *Connector {
	t.Helper()
	fsys := fstest.MapFS{
		"cloudbind.properties": &fstest.MapFile{
			Data: []byte("cloud.propertiesFile=/tmp/cloud.properties\n"),
		},
	}
	resolver := NewPropertiesFileResolver(MapEnvironment{}, fsys, "")
	return NewConnector(resolver, WithFileReader(func(path string) ([]byte, error) {
		if path != "/tmp/cloud.properties" {
			return nil, fmt.Errorf("unexpected path %q", path)
		}
		return []byte(target), nil
	}))
}

func TestConnector_ApplicationInstanceInfo(t *testing.T) {
	connector := newTestConnector(t, "cloud.appId=billing\n")
	info, err := connector.ApplicationInstanceInfo()
	if err != nil {
		t.Fatalf("instance info: %v", err)
	}
	if info.AppID != "billing" {
		t.Fatalf("unexpected app id %q", info.AppID)
	}
	if info.InstanceID == "" {
		t.Fatalf("expected generated instance id")
	}

	again, err := connector.ApplicationInstanceInfo()
	if err != nil {
		t.Fatalf("instance info: %v", err)
	}
	if again.InstanceID != info.InstanceID {
		t.Fatalf("instance id should be stable within one connector")
	}
}

func TestConnector_MissingAppIDFallsBackToUnknown(t *testing.T) {
	connector := newTestConnector(t, "cloud.customerDb=mysql://u:p@10.0.0.1:3306/orders\n")
	info, err := connector.ApplicationInstanceInfo()
	if err != nil {
		t.Fatalf("instance info: %v", err)
	}
	if info.AppID != "<unknown>" {
		t.Fatalf("unexpected app id %q", info.AppID)
	}
}

func TestConnector_RawServiceDescriptors(t *testing.T) {
	connector := newTestConnector(t, ""+
		"cloud.appId=billing\n"+
		"cloud.sessionStore=redis://:secret@10.0.0.2:6379\n"+
		"cloud.customerDb=mysql://u:p@10.0.0.1:3306/orders\n"+
		"cloud.customerDb.extra=ignored\n")
	raws, err := connector.RawServiceDescriptors()
	if err != nil {
		t.Fatalf("raw descriptors: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(raws))
	}
	if raws[0].ID != "customerDb" || raws[0].Tag != "mysql" {
		t.Fatalf("unexpected first descriptor: %+v", raws[0])
	}
	if raws[1].ID != "sessionStore" || raws[1].Tag != "redis" {
		t.Fatalf("unexpected second descriptor: %+v", raws[1])
	}
	if raws[0].Data["uri"] != "mysql://u:p@10.0.0.1:3306/orders" {
		t.Fatalf("unexpected uri payload: %v", raws[0].Data["uri"])
	}
}

func TestConnector_SkipsEntriesWithoutScheme(t *testing.T) {
	connector := newTestConnector(t, "cloud.broken=not a uri\ncloud.ok=amqp://u:p@10.0.0.3/vh\n")
	raws, err := connector.RawServiceDescriptors()
	if err != nil {
		t.Fatalf("raw descriptors: %v", err)
	}
	if len(raws) != 1 || raws[0].ID != "ok" {
		t.Fatalf("expected only the parseable entry, got %+v", raws)
	}
}

func TestConnector_NoPropertiesFileMeansNoServices(t *testing.T) {
	resolver := NewPropertiesFileResolver(MapEnvironment{}, fstest.MapFS{}, "")
	connector := NewConnector(resolver)
	raws, err := connector.RawServiceDescriptors()
	if err != nil {
		t.Fatalf("raw descriptors: %v", err)
	}
	if len(raws) != 0 {
		t.Fatalf("expected no descriptors, got %+v", raws)
	}
}
