// Package config provides Viper-based configuration loading for the heroforge
// economy engine and its tools.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/heroforge/internal/game/gacha"
	"github.com/cory-johannsen/heroforge/internal/game/loot"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig locates static game content.
type ContentConfig struct {
	// HeroesDir is the directory of hero template YAML files.
	HeroesDir string `mapstructure:"heroes_dir"`
}

// RandomConfig selects the random source.
type RandomConfig struct {
	// Seed makes every roll replayable. Zero selects the crypto source.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
//
// Rate and drop tables merge over the defaults key by key; set a rarity to 0
// to remove it from a table.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Content  ContentConfig  `mapstructure:"content"`
	Gacha    gacha.Config   `mapstructure:"gacha"`
	Loot     loot.Config    `mapstructure:"loot"`
	Town     town.Prices    `mapstructure:"town"`
	Random   RandomConfig   `mapstructure:"random"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.HeroesDir == "" {
		errs = append(errs, "content.heroes_dir must not be empty")
	}
	if err := c.Gacha.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Loot.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Town.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with HEROFORGE_ prefix
	v.SetEnvPrefix("HEROFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
// Keys the instance does not set fall back to the package defaults.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "heroforge")
	v.SetDefault("database.password", "heroforge")
	v.SetDefault("database.name", "heroforge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.heroes_dir", "content/heroes")

	g := gacha.DefaultConfig()
	v.SetDefault("gacha.pity_threshold", g.PityThreshold)
	v.SetDefault("gacha.single_cost", g.SingleCost)
	v.SetDefault("gacha.ten_cost", g.TenCost)
	v.SetDefault("gacha.rates", ratesDefault(g.Rates))
	v.SetDefault("gacha.debug.free_summon_always_available", false)

	l := loot.DefaultConfig()
	v.SetDefault("loot.base_gold_per_level", l.BaseGoldPerLevel)
	v.SetDefault("loot.gold_variance", l.GoldVariance)
	dropChance := make(map[string]any, len(l.DropChance))
	for k, p := range l.DropChance {
		dropChance[string(k)] = p
	}
	v.SetDefault("loot.drop_chance", dropChance)
	v.SetDefault("loot.combat_rates", ratesDefault(l.CombatRates))
	v.SetDefault("loot.min_level_offset", l.MinLevelOffset)
	v.SetDefault("loot.max_level_offset", l.MaxLevelOffset)
	v.SetDefault("loot.chest_gold", goldDefault(l.ChestGold))
	chestRates := make(map[string]any, len(l.ChestRates))
	for q, rates := range l.ChestRates {
		chestRates[string(q)] = ratesDefault(rates)
	}
	v.SetDefault("loot.chest_rates", chestRates)
	v.SetDefault("loot.hidden_path_gold", goldDefault(l.HiddenPathGold))
	v.SetDefault("loot.hidden_path_bump_chance", l.HiddenPathBumpChance)

	p := town.DefaultPrices()
	v.SetDefault("town.price_per_hp", p.PricePerHP)
	v.SetDefault("town.party_heal_cap", p.PartyHealCap)
	v.SetDefault("town.enchant_base_cost", p.EnchantBaseCost)
	v.SetDefault("town.enchant_multiplier", p.EnchantMultiplier)
	v.SetDefault("town.enchant_sell_bonus", p.EnchantSellBonus)
	v.SetDefault("town.sell_multiplier", p.SellMultiplier)

	v.SetDefault("random.seed", 0)
}

func ratesDefault(rs rarity.Rates) map[string]any {
	out := make(map[string]any, len(rs))
	for r, pct := range rs {
		out[string(r)] = pct
	}
	return out
}

func goldDefault(m map[rarity.Rarity]int) map[string]any {
	out := make(map[string]any, len(m))
	for r, g := range m {
		out[string(r)] = g
	}
	return out
}
