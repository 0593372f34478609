package relational

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-cloudbind/core"
)

// Relational descriptor kinds. KindRelational is the covariant root a
// creator declares when it can serve any relational database.
var (
	KindRelational = core.NewTypeRef("relational", core.KindService)
	KindMySQL      = core.NewTypeRef("mysql", KindRelational)
	KindPostgres   = core.NewTypeRef("postgres", KindRelational)
)

const (
	LabelMySQL    = "mysql"
	LabelPostgres = "postgres"

	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
)

// Descriptor describes one bound relational database service.
type Descriptor struct {
	id       string
	kind     core.TypeRef
	label    string
	host     string
	port     int
	username string
	password string
	database string
	query    string
}

// FromURI builds a relational descriptor from a connection URI. Credentials
// are percent-decoded by the URL parser, so DSN output carries them verbatim.
func FromURI(id string, kind core.TypeRef, label, uri string) (*Descriptor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("relational: descriptor id is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("relational: parse %s service uri: %w", id, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("relational: %s service uri has no host", id)
	}

	descriptor := &Descriptor{
		id:       id,
		kind:     kind,
		label:    label,
		host:     parsed.Hostname(),
		database: strings.TrimPrefix(parsed.Path, "/"),
		query:    parsed.RawQuery,
	}
	if parsed.User != nil {
		descriptor.username = parsed.User.Username()
		descriptor.password, _ = parsed.User.Password()
	}
	if portText := parsed.Port(); portText != "" {
		port, err := strconv.Atoi(portText)
		if err != nil {
			return nil, fmt.Errorf("relational: %s service uri has invalid port %q", id, portText)
		}
		descriptor.port = port
	}
	return descriptor, nil
}

func NewMySQLDescriptor(id, uri string) (*Descriptor, error) {
	descriptor, err := FromURI(id, KindMySQL, LabelMySQL, uri)
	if err != nil {
		return nil, err
	}
	if descriptor.port == 0 {
		descriptor.port = defaultMySQLPort
	}
	return descriptor, nil
}

func NewPostgresDescriptor(id, uri string) (*Descriptor, error) {
	descriptor, err := FromURI(id, KindPostgres, LabelPostgres, uri)
	if err != nil {
		return nil, err
	}
	if descriptor.port == 0 {
		descriptor.port = defaultPostgresPort
	}
	return descriptor, nil
}

func (d *Descriptor) ID() string         { return d.id }
func (d *Descriptor) Kind() core.TypeRef { return d.kind }
func (d *Descriptor) Label() string      { return d.label }

func (d *Descriptor) Host() string     { return d.host }
func (d *Descriptor) Port() int        { return d.port }
func (d *Descriptor) Username() string { return d.username }
func (d *Descriptor) Password() string { return d.password }
func (d *Descriptor) Database() string { return d.database }
func (d *Descriptor) Query() string    { return d.query }

func (d *Descriptor) Properties() []core.DeclaredProperty {
	return []core.DeclaredProperty{
		{Category: "connection", Name: "host", Value: nilIfEmpty(d.host)},
		{Category: "connection", Name: "port", Value: d.port},
		{Category: "connection", Name: "username", Value: nilIfEmpty(d.username)},
		{Category: "connection", Name: "password", Value: nilIfEmpty(d.password)},
		{Category: "connection", Name: "database", Value: nilIfEmpty(d.database)},
		{Category: "connection", Name: "uri", Value: d.URI()},
	}
}

// URI renders the canonical connection URI for the service.
func (d *Descriptor) URI() string {
	scheme := d.label
	if scheme == "" {
		scheme = "db"
	}
	built := url.URL{
		Scheme:   scheme,
		Host:     fmt.Sprintf("%s:%d", d.host, d.port),
		Path:     "/" + d.database,
		RawQuery: d.query,
	}
	if d.username != "" {
		if d.password != "" {
			built.User = url.UserPassword(d.username, d.password)
		} else {
			built.User = url.User(d.username)
		}
	}
	return built.String()
}

// DSN renders the descriptor in the form the matching database/sql driver
// expects: key-value host form for mysql drivers, URL form for everything
// else (lib/pq accepts URLs directly).
func (d *Descriptor) DSN() string {
	if KindMySQL.AssignableFrom(d.kind) {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", d.username, d.password, d.host, d.port, d.database)
		if d.query != "" {
			dsn += "?" + d.query
		}
		return dsn
	}
	return d.URI()
}

func nilIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// MySQLRecognizer accepts raw descriptors tagged with a mysql scheme and
// carrying a uri payload.
func MySQLRecognizer() core.Recognizer {
	return uriRecognizer(NewMySQLDescriptor, "mysql", "mariadb")
}

// PostgresRecognizer accepts postgres and postgresql tagged raws.
func PostgresRecognizer() core.Recognizer {
	return uriRecognizer(NewPostgresDescriptor, "postgres", "postgresql")
}

func uriRecognizer(build func(id, uri string) (*Descriptor, error), tags ...string) core.Recognizer {
	accepted := map[string]bool{}
	for _, tag := range tags {
		accepted[tag] = true
	}
	return core.Recognizer{
		Accept: func(raw core.RawDescriptor) bool {
			if !accepted[strings.ToLower(raw.Tag)] {
				return false
			}
			uri, _ := raw.Data["uri"].(string)
			return strings.TrimSpace(uri) != ""
		},
		Build: func(raw core.RawDescriptor) (core.Descriptor, error) {
			uri, _ := raw.Data["uri"].(string)
			return build(raw.ID, uri)
		},
	}
}
