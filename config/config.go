// Package config loads listener configuration from YAML files. Values may
// reference environment variables with $NAME or ${NAME} syntax, and a .env
// file in the working directory is loaded first when present.
package config

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/courier/listen"
)

// ErrNoListeners is returned when a configuration declares no listeners.
var ErrNoListeners = errors.New("config: at least one listener must be configured")

// Config is the root configuration document.
type Config struct {
	// Listen declares the sockets to serve on.
	Listen []ListenerConfig `yaml:"listen"`
}

// ListenerConfig declares one socket. Exactly one of Addr and Unix must be
// set.
type ListenerConfig struct {
	// Addr is a TCP listen address, e.g. "127.0.0.1:8080".
	Addr string `yaml:"addr,omitempty"`

	// Unix is a Unix domain socket path.
	Unix string `yaml:"unix,omitempty"`

	// MaxConns caps simultaneous connections. Zero means unlimited.
	MaxConns int `yaml:"max_conns,omitempty"`

	// TLS enables TLS termination. Only valid with Addr.
	TLS *TLSConfig `yaml:"tls,omitempty"`
}

// TLSConfig points at a certificate and key pair on disk.
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

// Load reads and validates the configuration file at path. A .env file in
// the working directory is applied to the environment first, and $NAME
// references in the file body are expanded from the environment before
// parsing.
func Load(path string) (*Config, error) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

// Parse decodes and validates a configuration document. Unknown fields are
// rejected.
func Parse(raw []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(raw))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Listen) == 0 {
		return ErrNoListeners
	}

	for i, l := range c.Listen {
		switch {
		case l.Addr == "" && l.Unix == "":
			return fmt.Errorf("config: listener %d: one of addr or unix must be set", i)
		case l.Addr != "" && l.Unix != "":
			return fmt.Errorf("config: listener %d: addr and unix are mutually exclusive", i)
		case l.TLS != nil && l.Unix != "":
			return fmt.Errorf("config: listener %d: tls requires addr", i)
		case l.TLS != nil && (l.TLS.Cert == "" || l.TLS.Key == ""):
			return fmt.Errorf("config: listener %d: tls needs both cert and key", i)
		case l.MaxConns < 0:
			return fmt.Errorf("config: listener %d: max_conns must not be negative", i)
		}
	}

	return nil
}

// Listeners builds the configured transports. Certificate files are loaded
// eagerly so a bad path fails here rather than at accept time.
func (c *Config) Listeners() ([]listen.Listener, error) {
	listeners := make([]listen.Listener, 0, len(c.Listen))

	for i, l := range c.Listen {
		var opts []listen.Option
		if l.MaxConns > 0 {
			opts = append(opts, listen.WithMaxConns(l.MaxConns))
		}

		if l.Unix != "" {
			listeners = append(listeners, listen.Unix(l.Unix, opts...))
			continue
		}

		if l.TLS != nil {
			cert, err := tls.LoadX509KeyPair(l.TLS.Cert, l.TLS.Key)
			if err != nil {
				return nil, fmt.Errorf("config: listener %d: %w", i, err)
			}
			opts = append(opts, listen.WithTLSConfig(&tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}))
		}

		listeners = append(listeners, listen.TCP(l.Addr, opts...))
	}

	return listeners, nil
}
