package mongo

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config defines the configuration of the MongoDB facade.
//
// Either URI or Host/Port identifies the server; URI wins when both are set.
// Authentication, pooling and retry behaviour are left to the driver and are
// configured through the URI options.
type Config struct {
	// URI is a full MongoDB connection string, e.g. "mongodb://user:pass@db:27017/?replicaSet=rs0"
	URI string `yaml:"uri" envconfig:"MONGO_URI"`

	// Host is the MongoDB server hostname, used when URI is empty
	// Default: "localhost"
	Host string `yaml:"host" envconfig:"MONGO_HOST"`

	// Port is the MongoDB server port, used when URI is empty
	// Default: 27017
	Port int `yaml:"port" envconfig:"MONGO_PORT"`

	// Database is the logical database every collection lives in. Required.
	Database string `yaml:"database" envconfig:"MONGO_DATABASE"`

	// AppName is reported to the server in the connection handshake
	AppName string `yaml:"app_name" envconfig:"MONGO_APP_NAME"`

	// ConnectTimeout bounds establishing a single connection
	// Default: 10 seconds
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"MONGO_CONNECT_TIMEOUT"`

	// ServerSelectionTimeout bounds how long an operation waits for a usable server
	// Default: 30 seconds
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" envconfig:"MONGO_SERVER_SELECTION_TIMEOUT"`

	// Logger is an optional logger from std/v1/logger package
	Logger Logger `yaml:"-" ignored:"true"`
}

// Logger is an interface that matches the std/v1/logger.Logger
//
//go:generate mockgen -source=configs.go -destination=mock_logger.go -package=mongo
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultHost                   = "localhost"
	DefaultPort                   = 27017
	DefaultConnectTimeout         = 10 * time.Second
	DefaultServerSelectionTimeout = 30 * time.Second
)

var errMissingDatabase = errors.New("mongo: database name is required")

// Validate reports configuration errors that make a client unusable.
func (c Config) Validate() error {
	if c.Database == "" {
		return errMissingDatabase
	}
	if c.URI == "" && c.Port < 0 {
		return fmt.Errorf("mongo: invalid port %d", c.Port)
	}
	return nil
}

// withDefaults returns a copy of c with zero values replaced by package defaults.
func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ServerSelectionTimeout == 0 {
		c.ServerSelectionTimeout = DefaultServerSelectionTimeout
	}
	return c
}

// ConnectionURI returns the connection string the client dials.
func (c Config) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	c = c.withDefaults()
	return "mongodb://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
