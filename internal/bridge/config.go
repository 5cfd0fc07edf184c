package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Host is the dev server bind target from the shared config. The JSON value
// is either a hostname string or the boolean true, which means bind every
// interface.
type Host struct {
	BindAll bool
	Name    string
}

// UnmarshalJSON accepts a string or the boolean true.
func (h *Host) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if !b {
			return fmt.Errorf("host: false is not a valid bind target")
		}
		*h = Host{BindAll: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("host: must be a string or true")
	}
	*h = Host{Name: s}
	return nil
}

// Address returns the address used when synthesizing the dev server origin.
func (h Host) Address() string {
	if h.BindAll {
		return "0.0.0.0"
	}
	return h.Name
}

// Port is the dev server port from the shared config. The JSON value may be
// a string or a number; either way it is carried as its string form.
type Port string

// UnmarshalJSON accepts a string or a number.
func (p *Port) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Port(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("port: must be a string or number")
	}
	*p = Port(s)
	return nil
}

// RawConfig is the parsed shared JSON document. Every key is optional; nil
// means the key was absent and its default applies.
type RawConfig struct {
	Aliases *[]string `json:"aliases"`
	Entry   *string   `json:"entry"`
	Root    *string   `json:"root"`
	OutDir  *string   `json:"outDir"`
	Host    *Host     `json:"host"`
	Port    *Port     `json:"port"`
	Origin  *string   `json:"origin"`
	HTTPS   *bool     `json:"https"`
}

// Config is the effective configuration after merging a RawConfig over the
// defaults. Every field has a defined value.
type Config struct {
	Aliases []string
	Entry   string
	Root    string
	OutDir  string
	Host    Host
	Port    string
	Origin  string
	HTTPS   bool
}

// Defaults returns the fixed base configuration the shared file is merged
// over.
func Defaults() Config {
	return Config{
		Aliases: []string{"js", "css", "images", "fonts"},
		Entry:   "entry",
		Root:    "src/js",
		OutDir:  "public",
		Host:    Host{Name: "127.0.0.1"},
		Port:    "3010",
	}
}

// Load reads the shared config file and merges it over the defaults. A
// missing or unparsable file is a hard failure; only individual absent keys
// inside a valid file fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw RawConfig
	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}

	return raw.merge(Defaults()), nil
}

// merge lays the raw document over base, one level deep. A present key always
// replaces its default in full.
func (r RawConfig) merge(base Config) Config {
	if r.Aliases != nil {
		base.Aliases = *r.Aliases
	}
	if r.Entry != nil {
		base.Entry = *r.Entry
	}
	if r.Root != nil {
		base.Root = *r.Root
	}
	if r.OutDir != nil {
		base.OutDir = *r.OutDir
	}
	if r.Host != nil {
		base.Host = *r.Host
	}
	if r.Port != nil {
		base.Port = string(*r.Port)
	}
	if r.Origin != nil {
		base.Origin = *r.Origin
	}
	if r.HTTPS != nil {
		base.HTTPS = *r.HTTPS
	}
	return base
}
