// Package config holds the runtime configuration of the Find Me example on
// hosted systems. Microcontroller builds use the build-time constants of the
// findme package only.
package config

type Config struct {
	Peripheral PeripheralConfig `yaml:"peripheral"`
	Log        LogConfig        `yaml:"log"`
	Power      PowerConfig      `yaml:"power"`
}

// ---- PERIPHERAL ----

type PeripheralConfig struct {
	LocalName      string `yaml:"local_name"`
	AdapterID      string `yaml:"adapter_id"`      // BlueZ adapter, e.g. hci0
	AdvIntervalMs  int    `yaml:"adv_interval_ms"` // 20..10240
	AdvTimeoutMs   int    `yaml:"adv_timeout_ms"`  // 0 = advertise forever
	MaxConnections int    `yaml:"max_connections"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// ---- POWER ----

type PowerConfig struct {
	Hibernate string `yaml:"hibernate"` // "exit" or "login1"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Peripheral: PeripheralConfig{
			LocalName:      "Find Me Target",
			AdapterID:      "hci0",
			AdvIntervalMs:  100,
			AdvTimeoutMs:   30000,
			MaxConnections: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Power: PowerConfig{
			Hibernate: "exit",
		},
	}
}
