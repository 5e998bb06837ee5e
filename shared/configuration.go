package shared

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const CONFIG_PREFIX = "CRECHE"

// AppConfig carries every runtime knob. Defaults suit a local demo deployment
// and must be overridden for anything else.
type AppConfig struct {
	Port     string `split_words:"true" default:"4000"`
	DataPath string `split_words:"true" default:"data"`

	AdminEmail    string `split_words:"true" default:"direction@creche.fr"`
	AdminName     string `split_words:"true" default:"Directrice"`
	AdminPassword string `split_words:"true" default:"arcenciel"`

	ApiToken string `split_words:"true" default:"daycare-demo-token"`

	AllowedOrigin string `split_words:"true" default:"*"`
}

func InitAppConfiguration() (config *AppConfig, err error) {
	config = &AppConfig{}

	if err := envconfig.Process(CONFIG_PREFIX, config); err != nil {
		return nil, fmt.Errorf("failed to parse env vars: %v", err)
	}

	return
}
