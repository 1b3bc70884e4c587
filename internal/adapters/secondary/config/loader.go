package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// flagKeys maps CLI flag names onto the setting they override
var flagKeys = map[string]string{
	"log-level": KeyLogLevel,
	"host":      KeyServeHost,
	"port":      KeyServePort,
	"interval":  KeyWatchIntervalMs,
}

// Loader reads the settings file and layers defaults, file values,
// environment variables and command line flags, in that order of precedence.
type Loader struct {
	envPrefix string
	flags     map[string]*pflag.Flag
}

// NewLoader creates a settings loader using the SLIDEX_ environment prefix
func NewLoader() *Loader {
	return &Loader{
		envPrefix: EnvPrefix,
		flags:     make(map[string]*pflag.Flag),
	}
}

// BindFlag makes flag override the setting key when it is set on the command line
func (l *Loader) BindFlag(key string, flag *pflag.Flag) {
	if flag != nil {
		l.flags[key] = flag
	}
}

// BindFlags binds every known flag present in flags
func (l *Loader) BindFlags(flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		l.BindFlag(key, flags.Lookup(name))
	}
}

// Load reads propertiesFile relative to workingDir and returns the validated configuration
func (l *Loader) Load(ctx context.Context, workingDir, propertiesFile string) (*entities.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := propertiesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(workingDir, propertiesFile)
	}

	values, err := readSettings(path)
	if err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "reading settings", Cause: err}
	}

	v := viper.New()
	for _, kv := range defaultValues() {
		v.SetDefault(kv.key, kv.value)
	}

	if err := v.MergeConfigMap(values); err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "merging settings", Cause: err}
	}

	v.SetEnvPrefix(l.envPrefix)
	v.AutomaticEnv()

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, &entities.ConfigError{Source: "--" + flag.Name, Message: "binding flag", Cause: err}
		}
	}

	var config entities.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "decoding settings", Cause: err}
	}
	config.BaseDirectory = workingDir

	if err := config.Validate(); err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "invalid settings", Cause: err}
	}

	return &config, nil
}

// CreateDefaults writes a settings file holding the default configuration.
// A .toml path gets TOML, anything else Java style properties.
func (l *Loader) CreateDefaults(ctx context.Context, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path) // #nosec G304 - path is chosen by the user running init
	if err != nil {
		return fmt.Errorf("creating settings file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if isTOML(path) {
		encoder := toml.NewEncoder(file)
		encoder.Indent = "  "
		if err := encoder.Encode(GetDefaultConfig()); err != nil {
			return fmt.Errorf("encoding settings to %s: %w", path, err)
		}
		return nil
	}

	p := properties.NewProperties()
	for _, kv := range defaultValues() {
		if _, _, err := p.Set(kv.key, fmt.Sprint(kv.value)); err != nil {
			return fmt.Errorf("encoding setting %s: %w", kv.key, err)
		}
	}

	if _, err := fmt.Fprintln(file, "# slidex settings"); err != nil {
		return fmt.Errorf("writing settings to %s: %w", path, err)
	}
	if _, err := p.Write(file, properties.UTF8); err != nil {
		return fmt.Errorf("writing settings to %s: %w", path, err)
	}

	return nil
}

// readSettings decodes the settings file into a flat key/value map
func readSettings(path string) (map[string]interface{}, error) {
	if isTOML(path) {
		values := make(map[string]interface{})
		if _, err := toml.DecodeFile(path, &values); err != nil {
			return nil, err
		}
		return values, nil
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, p.Len())
	for key, value := range p.Map() {
		values[key] = value
	}
	return values, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ensureDir ensures the parent directory of path exists
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Ensure Loader implements ports.ConfigLoader
var _ ports.ConfigLoader = (*Loader)(nil)
