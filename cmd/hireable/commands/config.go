package commands

import (
	"fmt"
	"strings"

	"hireable-backend/internal/client"
	"hireable-backend/pkg/content"

	"github.com/spf13/viper"
)

// Settings is the CLI configuration after file, HIREABLE_* env vars and
// flags have been merged.
type Settings struct {
	APIURL string `mapstructure:"api_url"`
	Token  string `mapstructure:"token"`
	Locale string `mapstructure:"locale"`
	Email  string `mapstructure:"email"`
}

// ConfigFile is set by the root command's --config flag.
var ConfigFile string

// LoadSettings reads the CLI settings. A missing config file is fine when
// one was not requested explicitly.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("HIREABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("locale", string(content.DefaultLocale))
	v.SetDefault("email", "")

	if ConfigFile != "" {
		v.SetConfigFile(ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", ConfigFile, err)
		}
	} else {
		v.SetConfigName("hireable")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hireable")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &s, nil
}

// Client builds an API client for these settings.
func (s *Settings) Client() *client.Client {
	return client.New(s.APIURL,
		client.WithToken(s.Token),
		client.WithLocale(s.locale()),
	)
}

func (s *Settings) locale() content.Locale {
	return content.ParseLocale(s.Locale)
}
