package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"formatbench/internal/utils"
)

type Config struct {
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DatasetConfig controls synthetic dataset generation. Sizes drive the
// generator command; Rows/Columns/Seed drive the fallback dataset the
// benchmark command generates when the input directory is empty.
type DatasetConfig struct {
	Rows    int          `mapstructure:"rows" validate:"gte=1"`
	Columns int          `mapstructure:"columns" validate:"gte=1"`
	Seed    int64        `mapstructure:"seed"`
	Sizes   []SizeConfig `mapstructure:"sizes" validate:"dive"`
}

// SizeConfig is one named dataset shape produced by the generator.
type SizeConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Rows    int    `mapstructure:"rows" validate:"gte=1"`
	Columns int    `mapstructure:"columns" validate:"gte=1"`
}

type BenchmarkConfig struct {
	Trials            int     `mapstructure:"trials" validate:"gte=1"`
	TrimPercent       float64 `mapstructure:"trim_percent" validate:"gte=0,lt=0.5"`
	DataDir           string  `mapstructure:"data_dir" validate:"required"`
	TempDir           string  `mapstructure:"temp_dir" validate:"required"`
	ReportPath        string  `mapstructure:"report_path" validate:"required"`
	GenerateIfMissing bool    `mapstructure:"generate_if_missing"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults and environment
			fmt.Println("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks value constraints on a loaded configuration.
func Validate(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return utils.NewErrorBuilder(utils.ErrCodeInvalidConfig).
			WithCause(err).
			WithDetails(err.Error()).
			Build()
	}
	return nil
}

func setDefaults() {
	// Dataset defaults
	viper.SetDefault("dataset.rows", 1000)
	viper.SetDefault("dataset.columns", 10)
	viper.SetDefault("dataset.seed", 42)
	viper.SetDefault("dataset.sizes", []map[string]interface{}{
		{"name": "small", "rows": 1000, "columns": 12},
		{"name": "medium", "rows": 10000, "columns": 24},
		{"name": "large", "rows": 100000, "columns": 36},
	})

	// Benchmark defaults
	viper.SetDefault("benchmark.trials", 5)
	viper.SetDefault("benchmark.trim_percent", 0.1)
	viper.SetDefault("benchmark.data_dir", "data")
	viper.SetDefault("benchmark.temp_dir", "temp")
	viper.SetDefault("benchmark.report_path", "results_summary.xlsx")
	viper.SetDefault("benchmark.generate_if_missing", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}
