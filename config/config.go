package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the per-project configuration file
// stored at .codetracker/config.json.
type Config struct {
	Version         string             `mapstructure:"version" json:"version"`
	ServerURL       string             `mapstructure:"server_url" json:"server_url"`
	Theme           string             `mapstructure:"theme" json:"theme"`
	IgnorePatterns  []string           `mapstructure:"ignore_patterns" json:"ignore_patterns"`
	TrackExtensions []string           `mapstructure:"track_extensions" json:"track_extensions"`
	MaxFileSize     int64              `mapstructure:"max_file_size" json:"max_file_size"`
	AutoSnapshot    AutoSnapshotConfig `mapstructure:"auto_snapshot" json:"auto_snapshot"`
}

// AutoSnapshotConfig controls the automatic snapshots taken around AI
// interactions.
type AutoSnapshotConfig struct {
	Enabled            bool     `mapstructure:"enabled" json:"enabled"`
	MinIntervalSeconds int      `mapstructure:"min_interval_seconds" json:"min_interval_seconds"`
	SkipPatterns       []string `mapstructure:"skip_patterns" json:"skip_patterns"`
	OnlyOnChanges      bool     `mapstructure:"only_on_changes" json:"only_on_changes"`
}

// DefaultConfig values written by the init command.
var DefaultConfig = Config{
	Version:   "3.0",
	ServerURL: "http://localhost:5000",
	Theme:     "dracula",
	IgnorePatterns: []string{
		"*.pyc", "__pycache__", ".git", ".codetracker", ".claude",
		"node_modules", ".env", "*.log", ".DS_Store",
		"*.class", "*.o", "build/", "dist/", "*.exe",
	},
	TrackExtensions: []string{
		".py", ".js", ".java", ".cpp", ".c", ".h",
		".cs", ".go", ".rs", ".rb", ".php", ".ts",
		".jsx", ".tsx", ".vue", ".swift", ".kt", ".md",
	},
	MaxFileSize: 1024 * 1024,
	AutoSnapshot: AutoSnapshotConfig{
		Enabled:            true,
		MinIntervalSeconds: 30,
		SkipPatterns:       []string{"^help", "^what is", "^explain"},
		OnlyOnChanges:      true,
	},
}

// ErrNotInitialized is returned when no configuration file exists for the
// project. Interactive commands surface it; automated paths skip silently.
var ErrNotInitialized = errors.New("codetrack is not initialized; run 'codetrack init' first")

// TrackerDir returns the per-project state directory.
func TrackerDir(root string) string { return filepath.Join(root, ".codetracker") }

// ConfigFile returns the path of the configuration file.
func ConfigFile(root string) string { return filepath.Join(TrackerDir(root), "config.json") }

// CredentialsFile returns the path of the credentials file.
func CredentialsFile(root string) string {
	return filepath.Join(TrackerDir(root), "credentials.json")
}

// CacheDir returns the directory holding the snapshot manifest and session
// state.
func CacheDir(root string) string { return filepath.Join(TrackerDir(root), "cache") }

// Load initializes the configuration from file, flags, and environment
// variables, and returns the final config. The rootCmd may be nil when no
// flag overrides apply (hook invocations).
func Load(rootCmd *cobra.Command, root string) (*Config, error) {
	configFile := ConfigFile(root)
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}

	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()
	bindEnv()

	viper.SetConfigFile(configFile)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if rootCmd != nil {
		bindFlags(rootCmd)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("server_url", DefaultConfig.ServerURL)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("ignore_patterns", DefaultConfig.IgnorePatterns)
	viper.SetDefault("track_extensions", DefaultConfig.TrackExtensions)
	viper.SetDefault("max_file_size", DefaultConfig.MaxFileSize)
	viper.SetDefault("auto_snapshot.enabled", DefaultConfig.AutoSnapshot.Enabled)
	viper.SetDefault("auto_snapshot.min_interval_seconds", DefaultConfig.AutoSnapshot.MinIntervalSeconds)
	viper.SetDefault("auto_snapshot.skip_patterns", DefaultConfig.AutoSnapshot.SkipPatterns)
	viper.SetDefault("auto_snapshot.only_on_changes", DefaultConfig.AutoSnapshot.OnlyOnChanges)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("server_url", "CODETRACKER_SERVER")
	_ = viper.BindEnv("theme", "CODETRACKER_THEME")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
}

// InitFlags initializes the persistent flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("path", ".", "Path of the tracked project (default: current directory).")
	rootCmd.PersistentFlags().String("server", "", "Base URL of the snapshot server (overrides config and CODETRACKER_SERVER).")
	rootCmd.PersistentFlags().String("theme", "", "Chroma theme used for highlighted previews (e.g. 'dracula', 'monokai').")
}

// Init creates the .codetracker directory layout and writes a default
// configuration. It refuses to run when the project is already initialized.
func Init(root, serverURL string) (*Config, error) {
	trackerDir := TrackerDir(root)
	if _, err := os.Stat(trackerDir); err == nil {
		return nil, fmt.Errorf("codetrack is already initialized at %s", trackerDir)
	}

	if err := os.MkdirAll(CacheDir(root), 0755); err != nil {
		return nil, fmt.Errorf("failed to create tracker directories: %w", err)
	}

	config := DefaultConfig
	if serverURL == "" {
		serverURL = os.Getenv("CODETRACKER_SERVER")
	}
	if serverURL != "" {
		config.ServerURL = serverURL
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(ConfigFile(root), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return &config, nil
}
