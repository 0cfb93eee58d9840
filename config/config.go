/*
Package config holds the configuration of odfops applications.

Configuration is read from TOML files. Nested tables are flattened to
dotted keys, i.e.

    [tracelevel]
    root = "Info"
    "odf.ops" = "Debug"

    [session]
    member = "alice"

results in keys "tracelevel.root", "tracelevel.odf.ops" and
"session.member". Config implements schuko.Configuration, which makes it
usable for setting up tracing (see InitTracing).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pelletier/go-toml/v2"
)

// Configuration keys.
const (
	KeyTracingAdapter = "tracing.adapter"
	KeyTraceRoot      = "tracelevel.root"
	KeyMember         = "session.member"
	KeyMemberName     = "session.member-name"
	KeyReviewMode     = "session.review-mode"
	KeyNumberingStyle = "list.numbering-style"
	KeyBulletStyle    = "list.bullet-style"
)

// TraceLevelPrefix is the prefix of trace level keys, e.g.
// "tracelevel.odf.ops".
const TraceLevelPrefix = "tracelevel"

// Config is a flat key-value configuration.
type Config struct {
	values map[string]interface{}
}

var _ schuko.Configuration = &Config{}

// New creates a configuration holding the defaults.
func New() *Config {
	c := &Config{values: make(map[string]interface{})}
	c.InitDefaults()
	return c
}

// InitDefaults sets all keys without a value to their defaults.
func (c *Config) InitDefaults() {
	defaults := map[string]interface{}{
		KeyTracingAdapter: "go",
		KeyTraceRoot:      "Error",
		KeyMemberName:     "",
		KeyReviewMode:     false,
		KeyNumberingStyle: style.DefaultNumberingStyleName,
		KeyBulletStyle:    style.DefaultBulletedStyleName,
	}
	for k, v := range defaults {
		if _, ok := c.values[k]; !ok {
			c.values[k] = v
		}
	}
}

// Load reads a TOML configuration. Keys not present in r are set to their
// defaults.
func Load(r io.Reader) (*Config, error) {
	var doc map[string]interface{}
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c := &Config{values: make(map[string]interface{})}
	flatten("", doc, c.values)
	c.InitDefaults()
	return c, nil
}

// LoadFile reads a TOML configuration file. A missing file results in the
// default configuration.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		tracing.Infof("no config file %q, using defaults", path)
		return New(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func flatten(prefix string, table map[string]interface{}, into map[string]interface{}) {
	for k, v := range table {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			flatten(k, sub, into)
			continue
		}
		into[k] = v
	}
}

// Set overrides the value of a key.
func (c *Config) Set(key string, value interface{}) {
	c.values[key] = value
}

// Keys returns all keys in lexical order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSet is part of interface schuko.Configuration.
func (c *Config) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString is part of interface schuko.Configuration. Non-string values
// are formatted, unknown keys yield "".
func (c *Config) GetString(key string) string {
	switch v := c.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetInt is part of interface schuko.Configuration. Values which are not
// numbers yield 0.
func (c *Config) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// GetBool is part of interface schuko.Configuration.
func (c *Config) GetBool(key string) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// IsInteractive is part of interface schuko.Configuration. Always false.
func (c *Config) IsInteractive() bool {
	return false
}

// --- Tracing ---------------------------------------------------------------

// InitTracing configures the global tracers from conf. Tracers are
// created with the adapter named by key "tracing.adapter" ("go" is
// always available), and trace levels are taken from keys
// "tracelevel.<tracer>".
func InitTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, TraceLevelPrefix, trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
