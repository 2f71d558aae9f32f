package respond

import (
	"context"
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/respond/client"
	"gopkg.in/yaml.v3"
)

// Config holds client settings loaded from a YAML or JSON file.
type Config struct {
	APIKey     string            `yaml:"apiKey" json:"apiKey"`
	BaseURL    string            `yaml:"baseURL" json:"baseURL"`
	Model      string            `yaml:"model" json:"model"`
	TimeoutSec int               `yaml:"timeoutSec" json:"timeoutSec"`
	Headers    map[string]string `yaml:"headers" json:"headers"`
	Verbose    bool              `yaml:"verbose" json:"verbose"`
}

// loadConfig reads URL and unmarshals by extension; default is YAML.
func loadConfig(ctx context.Context, URL string) (*Config, error) {
	result := &Config{}
	if URL == "" {
		return result, nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(path.Ext(URL)) {
	case ".json":
		err = json.Unmarshal(data, result)
	default:
		err = yaml.Unmarshal(data, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Config) clientOptions() []client.ClientOption {
	var options []client.ClientOption
	if c.APIKey != "" {
		options = append(options, client.WithAPIKey(c.APIKey))
	}
	if c.BaseURL != "" {
		options = append(options, client.WithBaseURL(c.BaseURL))
	}
	if c.TimeoutSec > 0 {
		options = append(options, client.WithTimeout(time.Duration(c.TimeoutSec)*time.Second))
	}
	for name, value := range c.Headers {
		options = append(options, client.WithHeader(name, value))
	}
	if c.Verbose {
		options = append(options, client.WithLogging(true))
	}
	return options
}
