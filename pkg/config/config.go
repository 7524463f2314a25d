// Package config loads runtime settings from an optional YAML file and
// ALS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// EnvPath names the variable that points at the YAML file when no path is
// given explicitly.
const EnvPath = "ALS_CONFIG"

// Config is the root configuration.
type Config struct {
	CorpusPath          string  `yaml:"corpus_path"          env:"ALS_CORPUS_PATH"          env-default:"../input/smallcorpus.txt" validate:"required"`
	WrapWidth           int     `yaml:"wrap_width"           env:"ALS_WRAP_WIDTH"           env-default:"50"                       validate:"gte=0"`
	MinRuleCount        int     `yaml:"min_rule_count"       env:"ALS_MIN_RULE_COUNT"       env-default:"10"                       validate:"gte=0"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"ALS_SIMILARITY_THRESHOLD" env-default:"0"                        validate:"gte=0,lte=1"`
	FoldRuleCase        bool    `yaml:"fold_rule_case"       env:"ALS_FOLD_RULE_CASE"       env-default:"false"`
	OnMalformed         string  `yaml:"on_malformed"         env:"ALS_ON_MALFORMED"         env-default:"abort"                    validate:"oneof=abort skip"`
	LedgerPath          string  `yaml:"ledger_path"          env:"ALS_LEDGER_PATH"`
	HTTPAddr            string  `yaml:"http_addr"            env:"ALS_HTTP_ADDR"            env-default:":8430"                    validate:"required"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ALS_LOG_LEVEL"  env-default:"info"    validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" env:"ALS_LOG_FORMAT" env-default:"console" validate:"oneof=console json"`
}

// Load reads configuration with priority ENV > YAML > defaults. An empty path
// falls back to $ALS_CONFIG; when neither names a file, only ENV and defaults
// apply. A path that was named but does not exist is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(EnvPath)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Load calls it automatically.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}
