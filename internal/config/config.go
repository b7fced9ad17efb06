package config

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/gearvrf/gvrf-exporter/internal/remote"
)

const EnvPrefix = "GVRF"

func DefaultConfig() *Config {

	v := viper.New()

	// Set default values
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	if err := setupViperConfig(v, configFile); err != nil {
		return nil, err
	}

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) error {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gvrf")

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setupHomeConfigPath(v)

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	return nil
}

// setupHomeConfigPath adds ~/.config/gvrf when a home directory exists
func setupHomeConfigPath(v *viper.Viper) {
	if len(os.Getenv("HOME")) == 0 {
		return
	}

	usr, err := user.Current()
	if err != nil {
		logrus.WithError(err).Debugln("Failed to get current user")
		return
	}

	v.AddConfigPath(filepath.Join(usr.HomeDir, ".config", "gvrf"))
}

// bindEnvironmentVariables binds all environment variables to viper
func bindEnvironmentVariables(v *viper.Viper) {

	// Device console
	v.BindEnv("remote.host", "GVRF_REMOTE_HOST")
	v.BindEnv("remote.port", "GVRF_REMOTE_PORT")
	v.BindEnv("remote.dial_timeout", "GVRF_REMOTE_DIAL_TIMEOUT")
	v.BindEnv("remote.read_timeout", "GVRF_REMOTE_READ_TIMEOUT")
	v.BindEnv("remote.debug", "GVRF_REMOTE_DEBUG")

	// Asset server
	v.BindEnv("server.enabled", "GVRF_SERVER_ENABLED")
	v.BindEnv("server.host", "GVRF_SERVER_HOST")
	v.BindEnv("server.port", "GVRF_SERVER_PORT")
	v.BindEnv("server.public_url", "GVRF_SERVER_PUBLIC_URL")
	v.BindEnv("server.root", "GVRF_SERVER_ROOT")

	bindLoggingEnvVars(v)
}

// bindLoggingEnvVars binds logging configuration environment variables
func bindLoggingEnvVars(v *viper.Viper) {
	v.BindEnv("logging.level", "GVRF_LOGGING_LEVEL")
	v.BindEnv("logging.format", "GVRF_LOGGING_FORMAT")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setupLogging configures the logging system based on the config
func setupLogging(config *Config, v *viper.Viper) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)
	config.CaptureEvents(defaultEventBufferSize)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	// Dump out the config settings if in debug mode
	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			logrus.Debugf("Config '%s': %v\n", key, value)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {

	// Device console defaults
	v.SetDefault("remote.host", "")
	v.SetDefault("remote.port", remote.DefaultPort)
	v.SetDefault("remote.dial_timeout", remote.DefaultDialTimeout.String())
	v.SetDefault("remote.read_timeout", remote.DefaultReadTimeout.String())
	v.SetDefault("remote.debug", false)

	// Asset server defaults
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.public_url", "")
	v.SetDefault("server.root", "./gvrf_assets")

	v.SetDefault("server.limits.read_timeout", "30s")
	v.SetDefault("server.limits.write_timeout", "5m") // large models over wifi
	v.SetDefault("server.limits.idle_timeout", "120s")

	v.SetDefault("server.health.enabled", true)
	v.SetDefault("server.health.path", "/health")

	// API defaults
	v.SetDefault("api.version", "v1")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
