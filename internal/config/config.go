// Package config loads runtime settings from RE2_* environment variables and
// an optional re2.yaml file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"go.dw1.io/re2/internal/bytesize"
	"go.dw1.io/re2/internal/dispatch"
	"go.dw1.io/re2/regexp"
)

// Config holds the resolved settings.
type Config struct {
	// Blocking runs calls on worker goroutines when the host supports it.
	Blocking bool
	// Workers bounds the calls running on workers at once.
	Workers int
	// MaxMem is the compile memory budget used when a call sets none.
	MaxMem int64
	// Engine is the backend used when a call selects none.
	Engine regexp.Engine
	// ResultLimit caps the bytes allocated for one call's results. Zero
	// means unlimited.
	ResultLimit int64
	// LogLevel is the minimum level logged.
	LogLevel zerolog.Level
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dispatch.blocking", dispatch.Supported())
	v.SetDefault("dispatch.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("compile.max_mem", bytesize.Format(regexp.DefaultMaxMem))
	v.SetDefault("compile.engine", regexp.EngineCore.String())
	v.SetDefault("result.limit", "0")
	v.SetDefault("log.level", zerolog.InfoLevel.String())
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load reads the environment and a config file. When file is empty, re2.yaml
// is searched for in ., $HOME/.re2 and /etc/re2 and may be absent; an
// explicit file must exist.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RE2")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("re2")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.re2")
		v.AddConfigPath("/etc/re2")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		Blocking: v.GetBool("dispatch.blocking"),
		Workers:  v.GetInt("dispatch.workers"),
	}

	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("dispatch.workers: must be at least 1, got %d", cfg.Workers)
	}

	maxMem, err := bytesize.Parse(v.GetString("compile.max_mem"))
	if err != nil {
		return Config{}, fmt.Errorf("compile.max_mem: %w", err)
	}
	if maxMem == 0 {
		return Config{}, errors.New("compile.max_mem: must be positive")
	}
	cfg.MaxMem = maxMem

	engine, ok := regexp.ParseEngine(v.GetString("compile.engine"))
	if !ok {
		return Config{}, fmt.Errorf("compile.engine: unknown engine %q", v.GetString("compile.engine"))
	}
	cfg.Engine = engine

	limit, err := bytesize.Parse(v.GetString("result.limit"))
	if err != nil {
		return Config{}, fmt.Errorf("result.limit: %w", err)
	}
	cfg.ResultLimit = limit

	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return Config{}, fmt.Errorf("log.level: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}
