package main

import (
	"fmt"
	"strings"

	minisite "github.com/countyhub/go-minisite"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MINISITE"

// loadConfig layers, from lowest to highest precedence: the module defaults,
// the optional config file, and MINISITE_* environment variables (a .env
// file in the working directory is loaded first when present).
func loadConfig(path string) (minisite.Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := minisite.DefaultConfig()
	cfg.Features.Logger = true
	setDefaults(v, cfg)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return minisite.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return minisite.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return minisite.Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can override it
// during Unmarshal.
func setDefaults(v *viper.Viper, cfg minisite.Config) {
	defaults := map[string]any{
		"storage.provider":                cfg.Storage.Provider,
		"storage.dsn":                     cfg.Storage.DSN,
		"storage.automigrate":             cfg.Storage.AutoMigrate,
		"cache.enabled":                   cfg.Cache.Enabled,
		"cache.defaultttl":                cfg.Cache.DefaultTTL,
		"navigation.group":                cfg.Navigation.Group,
		"navigation.byidpath":             cfg.Navigation.ByIDPath,
		"render.textformat":               cfg.Render.TextFormat,
		"render.allowrawhtml":             cfg.Render.AllowRawHTML,
		"render.defaultaccent":            cfg.Render.DefaultAccent,
		"features.markdown":               cfg.Features.Markdown,
		"features.metrics":                cfg.Features.Metrics,
		"features.logger":                 cfg.Features.Logger,
		"commands.timeout":                cfg.Commands.Timeout,
		"commands.autoregisterdispatcher": cfg.Commands.AutoRegisterDispatcher,
		"commands.autoregistercron":       cfg.Commands.AutoRegisterCron,
		"markdown.enabled":                cfg.Markdown.Enabled,
		"markdown.contentdir":             cfg.Markdown.ContentDir,
		"markdown.pattern":                cfg.Markdown.Pattern,
		"markdown.recursive":              cfg.Markdown.Recursive,
		"listings.fixturespath":           cfg.Listings.FixturesPath,
		"metrics.namespace":               cfg.Metrics.Namespace,
		"metrics.path":                    cfg.Metrics.Path,
		"logging.provider":                cfg.Logging.Provider,
		"logging.level":                   cfg.Logging.Level,
		"logging.format":                  cfg.Logging.Format,
		"logging.addsource":               cfg.Logging.AddSource,
		"http.addr":                       cfg.HTTP.Addr,
		"http.readtimeout":                cfg.HTTP.ReadTimeout,
		"http.writetimeout":               cfg.HTTP.WriteTimeout,
		"http.shutdowntimeout":            cfg.HTTP.ShutdownTimeout,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
