package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration, loaded once at startup and
// passed explicitly to whatever needs it.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Search   SearchConfig   `mapstructure:"search"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug | release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// RulesConfig holds the domain validation knobs. These used to be scattered
// constants; keeping them here makes every rule an explicit input.
type RulesConfig struct {
	MinUsernameLen      int  `mapstructure:"min_username_len"`
	MinCookingTime      int  `mapstructure:"min_cooking_time"`
	MaxCookingTime      int  `mapstructure:"max_cooking_time"`
	MinIngredientAmount int  `mapstructure:"min_ingredient_amount"`
	MaxIngredientAmount int  `mapstructure:"max_ingredient_amount"`
	AllowSelfSubscribe  bool `mapstructure:"allow_self_subscribe"`

	// Literal sets accepted for boolean query parameters.
	TrueLiterals  []string `mapstructure:"true_literals"`
	FalseLiterals []string `mapstructure:"false_literals"`
}

// SearchConfig configures ingredient search normalization. LayoutFrom and
// LayoutTo are rune-aligned keyboard rows: a query typed on the LayoutFrom
// keyboard is remapped onto LayoutTo before matching.
type SearchConfig struct {
	LayoutFrom string        `mapstructure:"layout_from"`
	LayoutTo   string        `mapstructure:"layout_to"`
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
}

// Load reads config.yaml (optional) and RECIPEHUB_* env overrides.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("RECIPEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "recipehub.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.endpoint", "localhost:4318")

	v.SetDefault("rules.min_username_len", 3)
	v.SetDefault("rules.min_cooking_time", 1)
	v.SetDefault("rules.max_cooking_time", 600)
	v.SetDefault("rules.min_ingredient_amount", 1)
	v.SetDefault("rules.max_ingredient_amount", 10000)
	v.SetDefault("rules.allow_self_subscribe", false)
	v.SetDefault("rules.true_literals", []string{"1", "true"})
	v.SetDefault("rules.false_literals", []string{"0", "false"})

	// Latin QWERTY row-by-row onto the Russian ЙЦУКЕН layout; used when a
	// search query arrives typed on the wrong keyboard.
	v.SetDefault("search.layout_from", `qwertyuiop[]asdfghjkl;'zxcvbnm,./`)
	v.SetDefault("search.layout_to", `йцукенгшщзхъфывапролджэячсмитьбю.`)
	v.SetDefault("search.catalog_ttl", 5*time.Minute)
}
