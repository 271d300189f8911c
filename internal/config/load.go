package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file configuration. They are read
// from the process environment first, then from the env file.
const (
	EnvLocalName  = "FINDME_LOCAL_NAME"
	EnvAdapterID  = "FINDME_ADAPTER_ID"
	EnvAdvTimeout = "FINDME_ADV_TIMEOUT_MS"
	EnvLogLevel   = "FINDME_LOG_LEVEL"
	EnvLogFormat  = "FINDME_LOG_FORMAT"
	EnvHibernate  = "FINDME_HIBERNATE"
)

// Load reads the YAML file at path on top of Default and applies environment
// overrides. An empty path skips the file; a missing env file is ignored.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	env := map[string]string{}
	if envFile != "" {
		var err error
		env, err = godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		if env == nil {
			env = map[string]string{}
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}

	if v, ok := lookup(EnvLocalName); ok {
		cfg.Peripheral.LocalName = v
	}
	if v, ok := lookup(EnvAdapterID); ok {
		cfg.Peripheral.AdapterID = v
	}
	if v, ok := lookup(EnvAdvTimeout); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvAdvTimeout, err)
		}
		cfg.Peripheral.AdvTimeoutMs = ms
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(EnvHibernate); ok {
		cfg.Power.Hibernate = v
	}

	return cfg, nil
}
