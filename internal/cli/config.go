package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnomegl/mcavail/internal/core"
)

type Config struct {
	ConfigPath string

	InputPath  string
	OutputPath string
	APIBaseURL string

	Proxy       string
	ProxyFile   string
	Timeout     int
	Impersonate string

	NoColor       bool
	NoProgressbar bool
	ShowDetails   bool

	CSVPath  string
	JSONPath string
}

func DefaultConfig() Config {
	return Config{
		InputPath:   core.DefaultInputFile,
		OutputPath:  core.DefaultOutputFile,
		APIBaseURL:  core.ProfileLookupURL,
		Timeout:     core.HTTPRequestTimeoutSeconds,
		Impersonate: "chrome",
	}
}

// fileConfig mirrors the keys accepted in a YAML config file. Pointers
// distinguish "not set" from zero values.
type fileConfig struct {
	Input         *string `yaml:"input"`
	Output        *string `yaml:"output"`
	APIURL        *string `yaml:"api_url"`
	Proxy         *string `yaml:"proxy"`
	ProxyFile     *string `yaml:"proxy_file"`
	Timeout       *int    `yaml:"timeout"`
	Impersonate   *string `yaml:"impersonate"`
	NoColor       *bool   `yaml:"no_color"`
	NoProgressbar *bool   `yaml:"no_progressbar"`
	ShowDetails   *bool   `yaml:"show_details"`
	CSVOutput     *string `yaml:"csv_output"`
	JSONOutput    *string `yaml:"json_output"`
}

// ApplyConfigFile overlays values from a YAML file onto config. Keys whose
// flag was set explicitly on the command line are left untouched.
func ApplyConfigFile(config *Config, path string, flagChanged func(name string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.NewConfigurationError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return core.NewConfigurationError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if flagChanged == nil {
		flagChanged = func(string) bool { return false }
	}

	setString(&config.InputPath, fc.Input, flagChanged("input"))
	setString(&config.OutputPath, fc.Output, flagChanged("output"))
	setString(&config.APIBaseURL, fc.APIURL, flagChanged("api-url"))
	setString(&config.Proxy, fc.Proxy, flagChanged("proxy"))
	setString(&config.ProxyFile, fc.ProxyFile, flagChanged("proxy-file"))
	setString(&config.Impersonate, fc.Impersonate, flagChanged("impersonate"))
	setString(&config.CSVPath, fc.CSVOutput, flagChanged("csv-output"))
	setString(&config.JSONPath, fc.JSONOutput, flagChanged("json-output"))

	if fc.Timeout != nil && !flagChanged("timeout") {
		config.Timeout = *fc.Timeout
	}
	setBool(&config.NoColor, fc.NoColor, flagChanged("no-color"))
	setBool(&config.NoProgressbar, fc.NoProgressbar, flagChanged("no-progressbar"))
	setBool(&config.ShowDetails, fc.ShowDetails, flagChanged("show-details"))

	return nil
}

func setString(dst *string, v *string, changed bool) {
	if v != nil && !changed {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, changed bool) {
	if v != nil && !changed {
		*dst = *v
	}
}
