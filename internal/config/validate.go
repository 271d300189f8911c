package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	p := cfg.Peripheral

	if p.LocalName == "" {
		return fmt.Errorf("peripheral.local_name must not be empty")
	}
	for i := 0; i < len(p.LocalName); i++ {
		if p.LocalName[i] < 0x20 || p.LocalName[i] > 0x7e {
			return fmt.Errorf("peripheral.local_name must be printable ASCII")
		}
	}
	if p.AdapterID == "" {
		return fmt.Errorf("peripheral.adapter_id must not be empty")
	}
	// Advertising interval range of the Bluetooth Core specification.
	if p.AdvIntervalMs < 20 || p.AdvIntervalMs > 10240 {
		return fmt.Errorf("peripheral.adv_interval_ms %d out of range 20..10240", p.AdvIntervalMs)
	}
	if p.AdvTimeoutMs < 0 {
		return fmt.Errorf("peripheral.adv_timeout_ms must not be negative")
	}
	if p.MaxConnections < 1 {
		return fmt.Errorf("peripheral.max_connections must be at least 1")
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", cfg.Log.Format)
	}

	switch cfg.Power.Hibernate {
	case "exit", "login1":
	default:
		return fmt.Errorf("power.hibernate %q: must be exit or login1", cfg.Power.Hibernate)
	}

	return nil
}
