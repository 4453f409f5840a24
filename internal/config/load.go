package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/3-lines-studio/sdui/internal/adapters/env"
)

type Config struct {
	Addr             string
	Source           string
	Dev              bool
	LogLevel         string
	LogFormat        string
	LoadTimeout      time.Duration
	OpaqueKnownItems bool
	ScriptSrc        string
	CSSHref          string
	// AssetsDir is served under /assets when set.
	AssetsDir string
}

// New returns a viper instance with sdui defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SDUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("source", "")
	v.SetDefault("dev", env.IsDev())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("load_timeout", 10*time.Second)
	v.SetDefault("opaque_known_items", false)
	v.SetDefault("script_src", "")
	v.SetDefault("css_href", "")
	v.SetDefault("assets_dir", "")
	return v
}

// Load reads .env, then cfgFile when given, into v.
func Load(v *viper.Viper, cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
	}
	return nil
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Addr:             v.GetString("addr"),
		Source:           v.GetString("source"),
		Dev:              v.GetBool("dev"),
		LogLevel:         v.GetString("log.level"),
		LogFormat:        v.GetString("log.format"),
		LoadTimeout:      v.GetDuration("load_timeout"),
		OpaqueKnownItems: v.GetBool("opaque_known_items"),
		ScriptSrc:        v.GetString("script_src"),
		CSSHref:          v.GetString("css_href"),
		AssetsDir:        v.GetString("assets_dir"),
	}
}
