package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	BackendConfig struct {
		ProjectID         string        `yaml:"project_id" validate:"required_without=BaseURL"`
		Dataset           string        `yaml:"dataset" validate:"required"`
		APIVersion        string        `yaml:"api_version" validate:"required"`
		UseCDN            bool          `yaml:"use_cdn"`
		BaseURL           string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
		Token             SecretString  `yaml:"token,omitempty"`
		Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
		RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
	}

	MessagesConfig struct {
		Loading     string `yaml:"loading" validate:"required"`
		NotFound    string `yaml:"not_found" validate:"required"`
		Failed      string `yaml:"failed" validate:"required"`
		MissingSlug string `yaml:"missing_slug" validate:"required"`
		Dismiss     string `yaml:"dismiss" validate:"required"`
		CloseLabel  string `yaml:"close_label" validate:"required"`
	}

	RenderConfig struct {
		Language              string         `yaml:"language" validate:"required"`
		TimeZone              string         `yaml:"time_zone,omitempty" validate:"omitempty,timezone"`
		PlaceholderURL        string         `yaml:"placeholder_url" validate:"required,url"`
		ProbeImages           bool           `yaml:"probe_images"`
		OutputNameTemplate    string         `yaml:"output_name_template"`
		FileNameTransliterate bool           `yaml:"file_name_transliterate"`
		Messages              MessagesConfig `yaml:"messages"`
	}

	TooltipConfig struct {
		HoverDelay time.Duration `yaml:"hover_delay" validate:"gte=0"`
	}

	ServerConfig struct {
		Listen string `yaml:"listen" validate:"required,hostname_port"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Backend   BackendConfig  `yaml:"backend"`
		Render    RenderConfig   `yaml:"render"`
		Tooltip   TooltipConfig  `yaml:"tooltip"`
		Server    ServerConfig   `yaml:"server"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Location returns time zone writing timestamps are displayed in, local time
// unless configured otherwise.
func (conf *RenderConfig) Location() *time.Location {
	if len(conf.TimeZone) == 0 {
		return time.Local
	}
	if loc, err := time.LoadLocation(conf.TimeZone); err == nil {
		return loc
	}
	return time.Local
}
