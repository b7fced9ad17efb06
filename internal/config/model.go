package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/models"
	"github.com/gearvrf/gvrf-exporter/internal/remote"
)

// Config represents the application configuration structure
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`

	logger *eventLogger
}

// RemoteConfig points at the GVRf debug console on the device
type RemoteConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port" default:"1645"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"` // 0 waits forever
	Debug       bool          `mapstructure:"debug"`        // log console transcript
}

// ServerConfig is the embedded asset server the device downloads models from
type ServerConfig struct {
	Enabled   bool               `mapstructure:"enabled" default:"true"`
	Host      string             `mapstructure:"host"`
	Port      int                `mapstructure:"port"`
	PublicURL string             `mapstructure:"public_url"` // URL prefix as seen by the device
	Root      string             `mapstructure:"root"`       // staging directory
	Limits    ServerLimitsConfig `mapstructure:"limits"`
	Health    HealthConfig       `mapstructure:"health"`
}

type ServerLimitsConfig struct {
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"info"`
	Format string `mapstructure:"format" default:"text"`
}

type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled" default:"true"`
	Path    string `mapstructure:"path" default:"/health"`
}

type APIConfig struct {
	Version string `mapstructure:"version" default:"v1"`
}

func (api *APIConfig) GetVersion() string {
	if len(api.Version) == 0 {
		return "v1"
	}
	return api.Version
}

func (c *Config) GetApiBasePath() string {
	return fmt.Sprintf("/api/%s", c.API.GetVersion())
}

// GetServerAddress returns the server bind address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) GetLocalServerUrl() string {
	hostname := c.Server.Host
	if hostname == "0.0.0.0" || len(hostname) == 0 {
		hostname = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(hostname, strconv.Itoa(c.Server.Port)))
}

// GetPublicURL returns the prefix the device uses to download staged
// files. Unless configured, it is derived from the local address that
// routes to the device.
func (c *Config) GetPublicURL() string {
	if len(c.Server.PublicURL) > 0 {
		return strings.TrimSuffix(c.Server.PublicURL, "/") + "/"
	}

	hostname := c.Server.Host
	if hostname == "0.0.0.0" || len(hostname) == 0 {
		hostname = c.detectOutboundAddress()
	}

	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(hostname, strconv.Itoa(c.Server.Port)),
		Path:   "/",
	}
	return u.String()
}

// detectOutboundAddress finds the local IP used to reach the device. No
// packet is sent: a UDP "connection" only resolves the route.
func (c *Config) detectOutboundAddress() string {
	if len(c.Remote.Host) == 0 {
		return "localhost"
	}

	conn, err := net.Dial("udp", net.JoinHostPort(c.Remote.Host, strconv.Itoa(c.GetRemotePort())))
	if err != nil {
		return "localhost"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "localhost"
}

func (c *Config) GetRemotePort() int {
	if c.Remote.Port <= 0 {
		return remote.DefaultPort
	}
	return c.Remote.Port
}

func (c *Config) HasRemote() bool {
	return len(c.Remote.Host) > 0
}

// SessionOptions returns the console session options for this config
func (c *Config) SessionOptions() remote.Options {
	return remote.Options{
		DialTimeout: c.Remote.DialTimeout,
		ReadTimeout: c.Remote.ReadTimeout,
		Debug:       c.Remote.Debug,
	}
}

// CaptureEvents starts recording log entries into a ring buffer of the
// given size.
func (c *Config) CaptureEvents(size int) {
	c.logger = newEventLogger(size)
	logrus.AddHook(c.logger)
}

// GetEvents returns the most recent log entries of this process
func (c *Config) GetEvents(filter LogFilter) []*models.LogEntry {
	if c.logger == nil {
		return nil
	}
	return c.logger.GetEventsWithFilter(filter)
}
