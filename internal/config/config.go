package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/rules"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix namespaces environment overrides, e.g. OPTVAL_PRICING_VOLATILITY.
const EnvPrefix = "OPTVAL"

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// PricingConfig holds the inputs of theoretical pricing that are not part of
// a contract.
type PricingConfig struct {
	RiskFreeRate float64 `mapstructure:"risk_free_rate"`
	Volatility   float64 `mapstructure:"volatility"`
	ContractSize int     `mapstructure:"contract_size"`
}

// RulesConfig mirrors rules.Tables with string keys so it can be read from YAML.
type RulesConfig struct {
	Fees           map[string]float64     `mapstructure:"fees"`
	PriceLimits    map[string]float64     `mapstructure:"price_limits"`
	SettlementDays map[string]int         `mapstructure:"settlement_days"`
	TradingHours   map[string]HoursConfig `mapstructure:"trading_hours"`
}

type HoursConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Textfile is where a one-shot run dumps its registry; empty disables it.
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file on top of Defaults. An empty path loads
// defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Support environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers scalar keys so AutomaticEnv can see them without a file.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("pricing.risk_free_rate", d.Pricing.RiskFreeRate)
	v.SetDefault("pricing.volatility", d.Pricing.Volatility)
	v.SetDefault("pricing.contract_size", d.Pricing.ContractSize)
	v.SetDefault("archive.enabled", d.Archive.Enabled)
	v.SetDefault("archive.type", d.Archive.Type)
	v.SetDefault("archive.path", d.Archive.Path)
	v.SetDefault("archive.s3.bucket", "")
	v.SetDefault("archive.s3.endpoint", "")
	v.SetDefault("archive.s3.region", "")
	v.SetDefault("archive.s3.access_key", "")
	v.SetDefault("archive.s3.secret_key", "")
	v.SetDefault("archive.s3.prefix", "")
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Pricing: PricingConfig{
			RiskFreeRate: rules.DefaultRiskFreeRate,
			Volatility:   0.30,
			ContractSize: 1000,
		},
		Rules: rulesConfigFrom(rules.Default()),
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    "./data/archive",
		},
	}
}

func rulesConfigFrom(t *rules.Tables) RulesConfig {
	rc := RulesConfig{
		Fees:           make(map[string]float64, len(t.Fees)),
		PriceLimits:    make(map[string]float64, len(t.PriceLimits)),
		SettlementDays: make(map[string]int, len(t.Settlement)),
		TradingHours:   make(map[string]HoursConfig, len(t.Hours)),
	}
	for class, fee := range t.Fees {
		rc.Fees[string(class)] = fee
	}
	for market, limit := range t.PriceLimits {
		rc.PriceLimits[string(market)] = limit
	}
	for class, days := range t.Settlement {
		rc.SettlementDays[string(class)] = days
	}
	for class, w := range t.Hours {
		rc.TradingHours[string(class)] = HoursConfig{Start: w.Start.String(), End: w.End.String()}
	}
	return rc
}

// RuleTables converts the rules section and the pricing rate into lookup tables.
func (c *Config) RuleTables() (*rules.Tables, error) {
	t := &rules.Tables{
		Fees:        make(map[core.AssetClass]float64, len(c.Rules.Fees)),
		PriceLimits: make(map[core.Market]float64, len(c.Rules.PriceLimits)),
		Settlement:  make(map[core.AssetClass]int, len(c.Rules.SettlementDays)),
		Hours:       make(map[core.AssetClass]rules.Window, len(c.Rules.TradingHours)),
		Rate:        c.Pricing.RiskFreeRate,
	}

	for key, fee := range c.Rules.Fees {
		class, err := core.ParseAssetClass(key)
		if err != nil {
			return nil, invalid("rules.fees: %w", err)
		}
		if fee < 0 {
			return nil, invalid("rules.fees.%s cannot be negative, got %g", key, fee)
		}
		t.Fees[class] = fee
	}
	for key, limit := range c.Rules.PriceLimits {
		market, err := core.ParseMarket(key)
		if err != nil {
			return nil, invalid("rules.price_limits: %w", err)
		}
		if limit < 0 {
			return nil, invalid("rules.price_limits.%s cannot be negative, got %g", key, limit)
		}
		t.PriceLimits[market] = limit
	}
	for key, days := range c.Rules.SettlementDays {
		class, err := core.ParseAssetClass(key)
		if err != nil {
			return nil, invalid("rules.settlement_days: %w", err)
		}
		if days < 0 {
			return nil, invalid("rules.settlement_days.%s cannot be negative, got %d", key, days)
		}
		t.Settlement[class] = days
	}
	for key, h := range c.Rules.TradingHours {
		class, err := core.ParseAssetClass(key)
		if err != nil {
			return nil, invalid("rules.trading_hours: %w", err)
		}
		w, err := rules.NewWindow(h.Start, h.End)
		if err != nil {
			return nil, invalid("rules.trading_hours.%s: %w", key, err)
		}
		t.Hours[class] = w
	}

	return t, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %w", err)
	}

	// Pricing validation
	if c.Pricing.Volatility <= 0 {
		return invalid("volatility must be positive, got %g", c.Pricing.Volatility)
	}
	if c.Pricing.RiskFreeRate <= -1 {
		return invalid("risk_free_rate must be above -1, got %g", c.Pricing.RiskFreeRate)
	}
	if c.Pricing.ContractSize < 1 {
		return invalid("contract_size must be at least 1, got %d", c.Pricing.ContractSize)
	}

	if _, err := c.RuleTables(); err != nil {
		return err
	}

	// Archive validation - backend settings only matter when enabled
	if c.Archive.Enabled {
		switch c.Archive.Type {
		case "localfs":
			if c.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive path required when type is localfs"))
			}
		case "s3":
			if c.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required when type is s3"))
			}
		default:
			return invalid("archive type must be localfs or s3, got %q", c.Archive.Type)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return core.WrapError(core.ErrConfigInvalid, fmt.Errorf(format, args...))
}
