// Package config provides functionality for managing configuration options
// for the server using command-line flags, a JSON config file, a .env file
// and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN enables the contact inbox when set.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// StaticDir overrides the embedded site with files from disk.
	StaticDir string `json:"static_dir"`

	// TLSCert and TLSKey switch the server to HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// LogLevel is passed to logger.Init.
	LogLevel string `json:"log_level"`

	// ContactRetention is how long contact messages are kept in the inbox.
	ContactRetention time.Duration `json:"-"`
}

// envOptions mirrors the environment variables understood by the server.
// Empty values leave the flag or file value untouched.
type envOptions struct {
	Port             string        `env:"PORT"`
	ServerAddress    string        `env:"SERVER_ADDRESS"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	Config           string        `env:"CONFIG"`
	StaticDir        string        `env:"STATIC_DIR"`
	TLSCert          string        `env:"TLS_CERT"`
	TLSKey           string        `env:"TLS_KEY"`
	LogLevel         string        `env:"LOG_LEVEL"`
	ContactRetention time.Duration `env:"CONTACT_RETENTION"`
}

const (
	defaultAddr      = ":3000"
	defaultConfig    = "config.json"
	defaultLogLevel  = "info"
	defaultRetention = 30 * 24 * time.Hour
)

// Parse loads an optional .env file and then parses the command-line
// flags, config file and environment variables. It returns a pointer to
// the Options struct containing the parsed configuration values.
func Parse() *Options {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			log.Fatalf("error while loading .env file: %v", err)
		}
	}

	options, err := Load(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatal(err)
	}
	return options
}

// Load builds Options from args parsed by fs, the config file they name
// and the environment. A nil environ means the process environment.
//
// Precedence, lowest first: flag defaults and values, config file,
// environment. SERVER_ADDRESS wins over PORT; PORT alone yields ":<port>".
func Load(fs *flag.FlagSet, args []string, environ map[string]string) (*Options, error) {
	options := &Options{}
	fs.StringVar(&options.Port, "a", defaultAddr, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address for the contact inbox")
	fs.StringVar(&options.Config, "config", defaultConfig, "path to config file")
	fs.StringVar(&options.Config, "c", defaultConfig, "path to config file (shorthand)")
	fs.StringVar(&options.StaticDir, "static", "", "serve site files from this directory instead of the embedded copy")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	fs.StringVar(&options.LogLevel, "log-level", defaultLogLevel, "log level")
	fs.DurationVar(&options.ContactRetention, "contact-retention", defaultRetention, "how long to keep contact messages")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var envOpts envOptions
	if err := env.ParseWithOptions(&envOpts, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if envOpts.Config != "" {
		options.Config = envOpts.Config
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if envOpts.Port != "" {
		options.Port = ":" + envOpts.Port
	}
	if envOpts.ServerAddress != "" {
		options.Port = envOpts.ServerAddress
	}
	if envOpts.DatabaseDSN != "" {
		options.DatabaseDSN = envOpts.DatabaseDSN
	}
	if envOpts.StaticDir != "" {
		options.StaticDir = envOpts.StaticDir
	}
	if envOpts.TLSCert != "" {
		options.TLSCert = envOpts.TLSCert
	}
	if envOpts.TLSKey != "" {
		options.TLSKey = envOpts.TLSKey
	}
	if envOpts.LogLevel != "" {
		options.LogLevel = envOpts.LogLevel
	}
	if envOpts.ContactRetention > 0 {
		options.ContactRetention = envOpts.ContactRetention
	}

	return options, nil
}

// TLSEnabled reports whether both TLS files are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}
