package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/common"
)

// GeneratorConfig holds the generator.* settings.
type GeneratorConfig struct {
	Calendar        string
	InterestAnchors []string
	Seed            uint64
	// Seeded is true when generator.seed is set, including to 0.
	Seeded bool
}

// LoadGeneratorConfig reads generator settings from viper. Without
// generator.seed the generator is unseeded and not repeatable.
func LoadGeneratorConfig() (GeneratorConfig, error) {
	cfg := GeneratorConfig{
		Calendar:        viper.GetString("generator.calendar"),
		InterestAnchors: viper.GetStringSlice("generator.interest_anchors"),
		Seed:            viper.GetUint64("generator.seed"),
		Seeded:          viper.IsSet("generator.seed"),
	}
	if len(cfg.InterestAnchors) == 0 {
		cfg.InterestAnchors = append([]string(nil), calendar.DefaultInterestAnchors...)
	}

	if _, err := cfg.Anchors(); err != nil {
		return GeneratorConfig{}, err
	}
	return cfg, nil
}

// Anchors parses the configured interest posting days.
func (c GeneratorConfig) Anchors() (calendar.AnchorSet, error) {
	anchors, err := calendar.NewAnchorSet(c.InterestAnchors)
	if err != nil {
		return calendar.AnchorSet{}, fmt.Errorf("%w: generator.interest_anchors: %w", common.ErrInvalidConfig, err)
	}
	return anchors, nil
}
