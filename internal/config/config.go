package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Check     CheckConfig     `yaml:"check" mapstructure:"check"`
	Normalize NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`
	Merge     MergeConfig     `yaml:"merge" mapstructure:"merge"`
	Convert   ConvertConfig   `yaml:"convert" mapstructure:"convert"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CheckConfig configures the GEOID / district cross-check.
type CheckConfig struct {
	TablePath        string `yaml:"table_path" mapstructure:"table_path"`
	CollectionPath   string `yaml:"collection_path" mapstructure:"collection_path"`
	IDColumn         string `yaml:"id_column" mapstructure:"id_column"`
	DistrictProperty string `yaml:"district_property" mapstructure:"district_property"`
	Format           string `yaml:"format" mapstructure:"format"`
}

// NormalizeConfig configures the code property rewrite.
type NormalizeConfig struct {
	InputPath  string `yaml:"input_path" mapstructure:"input_path"`
	OutputPath string `yaml:"output_path" mapstructure:"output_path"`
	Property   string `yaml:"property" mapstructure:"property"`
	Mode       string `yaml:"mode" mapstructure:"mode"`
	Width      int    `yaml:"width" mapstructure:"width"`
	Verify     bool   `yaml:"verify" mapstructure:"verify"`
}

// MergeConfig configures joining tabular values into feature properties.
type MergeConfig struct {
	CollectionPath string   `yaml:"collection_path" mapstructure:"collection_path"`
	TablePath      string   `yaml:"table_path" mapstructure:"table_path"`
	OutputPath     string   `yaml:"output_path" mapstructure:"output_path"`
	KeyColumn      string   `yaml:"key_column" mapstructure:"key_column"`
	JoinProperty   string   `yaml:"join_property" mapstructure:"join_property"`
	ValueColumns   []string `yaml:"value_columns" mapstructure:"value_columns"`
}

// ConvertConfig configures shapefile conversion.
type ConvertConfig struct {
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("check.table_path", "district_maine_alzheimers_direct_estimates.csv")
	v.SetDefault("check.collection_path", "Maine_district.geojson")
	v.SetDefault("check.id_column", "GEOID")
	v.SetDefault("check.district_property", "District")
	v.SetDefault("check.format", "text")
	v.SetDefault("normalize.input_path", "county_maine.geojson")
	v.SetDefault("normalize.output_path", "modified_county_maine.geojson")
	v.SetDefault("normalize.property", "COUNTYFP")
	v.SetDefault("normalize.mode", "strip")
	v.SetDefault("normalize.width", 3)
	v.SetDefault("normalize.verify", true)
	v.SetDefault("merge.collection_path", "puma_newengland.geojson")
	v.SetDefault("merge.output_path", "merged_puma_newengland.geojson")
	v.SetDefault("merge.key_column", "geoid")
	v.SetDefault("merge.join_property", "GEOID10")
	v.SetDefault("merge.value_columns", []string{"alzheimer_prob"})
	v.SetDefault("convert.temp_dir", "/tmp/geoprep")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
