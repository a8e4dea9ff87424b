package core

import (
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host string
		Port string
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Charset       string // sent as client_encoding
		DisableTLS    bool
	}

	Config struct {
		Env      string // DEV (default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string
		Build    string
		WorkDir  string

		SecretKey         string
		DefaultFromName   string
		DefaultFromAddr   string
		FrontendBaseURL   string
		SessionExpiration time.Duration

		SendgridApiKey string
		RollbarToken   string

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (c ServerConfig) Address() string   { return net.JoinHostPort(c.Host, c.Port) }
func (c DatabaseConfig) Address() string { return net.JoinHostPort(c.Host, c.Port) }

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

// NewConfig loads the app configuration: defaults first, then an optional
// config/.env.<env> file, then environment variables (highest precedence).
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("secretKey", "y2ub$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy-poq5")
	v.SetDefault("defaultFromName", "Darasa")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("sessionExpirationDelta", 7*24*time.Hour)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8000")

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "course")
	v.SetDefault("database.user", "admin")
	v.SetDefault("database.password", "password123")
	v.SetDefault("database.charset", "UTF8")
	v.SetDefault("database.disableTls", true)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	// the DB settings also honor the short names the ops scripts export:
	// DB_HOST, DB_NAME, DB_USER, DB_PASSWORD, DB_CHARSET
	replacer := strings.NewReplacer(".", "_")
	for key, alias := range map[string]string{
		"database.host":     "DB_HOST",
		"database.name":     "DB_NAME",
		"database.user":     "DB_USER",
		"database.password": "DB_PASSWORD",
		"database.charset":  "DB_CHARSET",
	} {
		_ = v.BindEnv(key, env+"_"+strings.ToUpper(replacer.Replace(key)), alias)
	}

	conf := &Config{
		Env:               env,
		Debug:             v.GetBool("debug"),
		TestMode:          v.GetBool("testMode"),
		AppName:           v.GetString("appName"),
		Build:             v.GetString("build"),
		WorkDir:           wd,
		SecretKey:         v.GetString("secretKey"),
		DefaultFromName:   v.GetString("defaultFromName"),
		DefaultFromAddr:   v.GetString("defaultFromEmail"),
		FrontendBaseURL:   v.GetString("frontendBaseUrl"),
		SessionExpiration: v.GetDuration("sessionExpirationDelta"),
		SendgridApiKey:    v.GetString("sendgridApiKey"),
		RollbarToken:      v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetString("server.port"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			Charset:       v.GetString("database.charset"),
			DisableTLS:    v.GetBool("database.disableTls"),
		},
	}
	return conf, nil
}
