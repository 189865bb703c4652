// Package config loads stubgen configuration with Viper.
//
// Precedence: defaults, then stubgen.toml (working directory upward),
// then STUBGEN_* environment variables. Flags bound by the CLI layer win
// over all of these.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/stubgen/errors"
)

// Config is the resolved stubgen configuration.
type Config struct {
	Output Output `mapstructure:"output"`
	JVM    JVM    `mapstructure:"jvm"`
	Log    Log    `mapstructure:"log"`
}

// Output controls where and how stub trees are written.
type Output struct {
	// Dir is the directory stub packages are written under.
	Dir string `mapstructure:"dir"`

	// StubsSuffix appends the PEP-561 "-stubs" suffix to the outermost
	// package directory.
	StubsSuffix bool `mapstructure:"stubs_suffix"`

	// Javadoc derives docstrings from javadoc where available.
	Javadoc bool `mapstructure:"javadoc"`
}

// JVM controls how the reflection agent process is launched.
type JVM struct {
	// Java is the java executable used to launch the agent.
	Java string `mapstructure:"java"`

	// AgentJar is the path of the reflection agent jar. Empty means the
	// jar bundled next to the stubgen binary.
	AgentJar string `mapstructure:"agent_jar"`

	// Classpath is the default colon-delimited classpath, glob patterns
	// allowed.
	Classpath string `mapstructure:"classpath"`

	// Args are extra JVM arguments, shell-quoted in one string.
	Args string `mapstructure:"args"`
}

// Log controls the logger setup.
type Log struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}

var globalConfig *Config
var viperInstance *viper.Viper
var configFileErr error

// Load reads the configuration, caching the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := GetViper()
	if configFileErr != nil {
		return nil, configFileErr
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &cfg
	return globalConfig, nil
}

// GetViper returns the shared Viper instance for flag binding.
func GetViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix("STUBGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findConfigFile(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			configFileErr = errors.Wrapf(err, "reading config file %s", path)
		}
	}

	viperInstance = v
	return v
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
	configFileErr = nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.stubs_suffix", true)
	v.SetDefault("output.javadoc", true)

	v.SetDefault("jvm.java", "java")
	v.SetDefault("jvm.agent_jar", "")
	v.SetDefault("jvm.classpath", "")
	v.SetDefault("jvm.args", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// findConfigFile walks up from the working directory looking for
// stubgen.toml.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, "stubgen.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
