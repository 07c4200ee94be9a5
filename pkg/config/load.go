package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads a YAML (or any viper supported) file on top of Default and
// validates the result
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	return decode(v, Default())
}

// Apply overlays an override map onto base. Keys are either nested maps
// ({"zoom": {"step": 5}}) or dotted paths ("zoom.step").
func Apply(base Config, overrides map[string]any) (Config, error) {
	v := viper.New()
	for key, value := range overrides {
		v.Set(key, value)
	}

	return decode(v, base.clone())
}

func decode(v *viper.Viper, cfg Config) (Config, error) {
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// clone copies the slices so decoding never writes into the caller's config
func (c Config) clone() Config {
	c.Indicators.RSIBands = append([]float64(nil), c.Indicators.RSIBands...)
	c.Indicators.Palette = append([]string(nil), c.Indicators.Palette...)
	return c
}
