package config

// MaxLocalNameLen is what is left of the 31 byte advertising payload after
// the flags (3 bytes), the Immediate Alert Service UUID (4 bytes) and the
// local name header (2 bytes).
const MaxLocalNameLen = 22

// Normalize applies post-validation normalization.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if len(cfg.Peripheral.LocalName) > MaxLocalNameLen {
		cfg.Peripheral.LocalName = cfg.Peripheral.LocalName[:MaxLocalNameLen]
	}
}
