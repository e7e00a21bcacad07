package hunt

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"horizon/internal/classify"
)

// Config carries every adjustable parameter of the prober. Zero values
// are invalid; start from Default and override.
type Config struct {
	// Prime table: first PrimeCount primes, all below PrimeBound.
	PrimeCount int `mapstructure:"prime_count" yaml:"prime_count"`
	PrimeBound int `mapstructure:"prime_bound" yaml:"prime_bound"`

	// GlideCap bounds the 3x+1 iteration per prime.
	GlideCap int `mapstructure:"glide_cap" yaml:"glide_cap"`

	Probe ProbeConfig `mapstructure:"probe" yaml:"probe"`
	Mine  MineConfig  `mapstructure:"mine" yaml:"mine"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// ProbeConfig holds the single-probe classification thresholds.
type ProbeConfig struct {
	HighScoreMax float64 `mapstructure:"high_score_max" yaml:"high_score_max"`
	HighGlideMin int     `mapstructure:"high_glide_min" yaml:"high_glide_min"`
	LowScoreMin  float64 `mapstructure:"low_score_min" yaml:"low_score_min"`
}

// MineConfig holds the mining thresholds and loop parameters.
type MineConfig struct {
	ScoreMax float64 `mapstructure:"score_max" yaml:"score_max"`
	GlideMin int     `mapstructure:"glide_min" yaml:"glide_min"`

	// CoeffRange R: candidates are drawn uniformly from [-R, R].
	CoeffRange int64 `mapstructure:"coeff_range" yaml:"coeff_range"`

	// OutPath is the append-only titan file.
	OutPath string `mapstructure:"out_path" yaml:"out_path"`

	// ProgressEvery: emit a throughput line every this many attempts.
	ProgressEvery int64 `mapstructure:"progress_every" yaml:"progress_every"`

	// Workers: 1 reproduces the strictly sequential original behavior.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Seed for the random source; 0 means seed from the clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// Default mirrors the reference constants: 400 primes below 3000 (max
// 2741), glide cap 300, probe cut -25/65 with low-rank floor -10, titan
// cut -28/80, coefficients in ±10^12.
func Default() *Config {
	return &Config{
		PrimeCount: 400,
		PrimeBound: 3000,
		GlideCap:   300,
		Probe: ProbeConfig{
			HighScoreMax: -25.0,
			HighGlideMin: 65,
			LowScoreMin:  -10.0,
		},
		Mine: MineConfig{
			ScoreMax:      -28.0,
			GlideMin:      80,
			CoeffRange:    1_000_000_000_000,
			OutPath:       "titans_found.txt",
			ProgressEvery: 10_000,
			Workers:       1,
			Seed:          0,
		},
		LogLevel: "info",
	}
}

// Load reads a config file on top of the defaults. An empty path or a
// missing file yields the defaults; a present-but-broken file is an
// error. HORIZON_* environment variables override either.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HORIZON")
	v.AutomaticEnv()

	cfg := Default()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, nil
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configs the engine cannot run with. The prime-table
// bound itself is checked at table construction.
func (c *Config) Validate() error {
	if c.PrimeCount <= 0 {
		return fmt.Errorf("prime_count must be positive, got %d", c.PrimeCount)
	}
	if c.PrimeBound < 2 {
		return fmt.Errorf("prime_bound must be >= 2, got %d", c.PrimeBound)
	}
	if c.GlideCap <= 0 {
		return fmt.Errorf("glide_cap must be positive, got %d", c.GlideCap)
	}
	if c.Mine.CoeffRange <= 0 {
		return fmt.Errorf("mine.coeff_range must be positive, got %d", c.Mine.CoeffRange)
	}
	if c.Mine.OutPath == "" {
		return errors.New("mine.out_path must not be empty")
	}
	if c.Mine.ProgressEvery <= 0 {
		return fmt.Errorf("mine.progress_every must be positive, got %d", c.Mine.ProgressEvery)
	}
	if c.Mine.Workers <= 0 {
		return fmt.Errorf("mine.workers must be positive, got %d", c.Mine.Workers)
	}
	return nil
}

// ProbeThresholds converts the config block to the classifier's type.
func (c *Config) ProbeThresholds() classify.ProbeThresholds {
	return classify.ProbeThresholds{
		HighScoreMax: c.Probe.HighScoreMax,
		HighGlideMin: c.Probe.HighGlideMin,
		LowScoreMin:  c.Probe.LowScoreMin,
	}
}

func (c *Config) MineThresholds() classify.MineThresholds {
	return classify.MineThresholds{
		ScoreMax: c.Mine.ScoreMax,
		GlideMin: c.Mine.GlideMin,
	}
}

// WriteDefault saves the default config as YAML so users have something
// to edit.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	header := "# horizon configuration\n# Generated " +
		time.Now().Format("2006-01-02 15:04:05") + "\n\n"
	return os.WriteFile(path, []byte(header+string(data)), 0o644)
}
