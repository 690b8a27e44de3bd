package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/horizon-topics/internal/topics"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// MaxLookahead bounds the header validity window.
	MaxLookahead = 200

	// Directory permissions
	DefaultDirPerm = 0o750

	// EnvPrefix namespaces environment variables, e.g. HORIZON_TOPICS_DIR.
	EnvPrefix = "HORIZON_TOPICS"
)

// ErrVersionRequested is returned by LoadFromFlags when --version is passed.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the topics MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// PDFDirectory is where work programmes are read from.
	PDFDirectory string
	// ExportDirectory receives exported spreadsheets. Defaults to PDFDirectory.
	ExportDirectory string

	// Extraction heuristics
	Lookahead int
	StopMatch string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeStdio,
		Host:         DefaultHost,
		Port:         DefaultPort,
		PDFDirectory: currentDir,
		Lookahead:    topics.DefaultLookahead,
		StopMatch:    string(topics.StopPrefix),
		Version:      "1.0.0",
		ServerName:   "horizon-topics",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and environment variables and
// returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	if versionRequested(os.Args[1:]) {
		return nil, ErrVersionRequested
	}

	pflag.Parse()

	populateConfigFromViper(cfg)
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var flagKeys = []string{"mode", "host", "port", "dir", "exportdir", "loglevel", "maxfilesize", "lookahead", "stopmatch"}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.PDFDirectory)
	viper.SetDefault("exportdir", "")
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("lookahead", cfg.Lookahead)
	viper.SetDefault("stopmatch", cfg.StopMatch)
}

func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.PDFDirectory, "Directory containing work programme PDFs")
	pflag.String("exportdir", "", "Directory for exported files (defaults to --dir)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("lookahead", cfg.Lookahead, "Lines after a section code searched for topic markers")
	pflag.String("stopmatch", cfg.StopMatch, "Section stop keyword matching: 'prefix' or 'contains'")
}

func bindFlagsToViper() {
	for _, key := range flagKeys {
		_ = viper.BindPFlag(key, pflag.Lookup(key))
	}
}

func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nHorizon Topics - an MCP server extracting funding topics from Horizon Europe work programmes\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/work-programmes           # stdio mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --dir=/path/to/pdfs        # HTTP/SSE server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --stopmatch=contains --lookahead=25      # looser heuristics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		for _, key := range flagKeys {
			fmt.Fprintf(os.Stderr, "  %s_%s\n", EnvPrefix, strings.ToUpper(key))
		}
	}
}

func versionRequested(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.PDFDirectory = viper.GetString("dir")
	cfg.ExportDirectory = viper.GetString("exportdir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Lookahead = viper.GetInt("lookahead")
	cfg.StopMatch = viper.GetString("stopmatch")
}

func (c *Config) expandPaths() {
	if c.PDFDirectory != "" {
		if abs, err := filepath.Abs(c.PDFDirectory); err == nil {
			c.PDFDirectory = abs
		}
	}
	if c.ExportDirectory != "" {
		if abs, err := filepath.Abs(c.ExportDirectory); err == nil {
			c.ExportDirectory = abs
		}
	}
}

// Validate checks the configuration, filling the export directory and
// creating missing directories.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}
	if c.ExportDirectory == "" {
		c.ExportDirectory = c.PDFDirectory
	}

	for _, dir := range []string{c.PDFDirectory, c.ExportDirectory} {
		if err := ensureDirectory(dir); err != nil {
			return err
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.Lookahead < 1 || c.Lookahead > MaxLookahead {
		return fmt.Errorf("lookahead must be between 1 and %d", MaxLookahead)
	}

	if c.StopMatch != string(topics.StopPrefix) && c.StopMatch != string(topics.StopContains) {
		return fmt.Errorf("invalid stop match: %s (must be 'prefix' or 'contains')", c.StopMatch)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func ensureDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}

// ExtractorOptions maps the configuration onto pipeline options.
func (c *Config) ExtractorOptions() topics.Options {
	return topics.Options{
		Lookahead: c.Lookahead,
		StopMatch: topics.StopMatch(c.StopMatch),
	}
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, ExportDirectory: %s, "+
		"LogLevel: %s, MaxFileSize: %d, Lookahead: %d, StopMatch: %s}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.ExportDirectory,
		c.LogLevel, c.MaxFileSize, c.Lookahead, c.StopMatch)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
