package core

import (
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
		Address            string
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Path string
	}

	UploadsConfig struct {
		Root string
	}

	ReportConfig struct {
		LogoPath string
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		// InstitutionName is printed on generated report documents.
		InstitutionName string
		SecretKey       string
		// AdminDefaultPassword is the password the bootstrap admin account
		// is seeded with. Change it after the first login.
		AdminDefaultPassword string
		RollbarToken         string

		Server   ServerConfig
		Database DatabaseConfig
		Uploads  UploadsConfig
		Report   ReportConfig
	}
)

// NewConfig loads the app configuration from defaults, an optional
// `config/.env.<env>` file and environment variables prefixed with the env name.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "StudentPortal")
	v.SetDefault("institutionName", "Joshi's and Kumawat University")
	v.SetDefault("secretKey", "4q@7dq+t#(1yy-0b&f&0p9=e^_0h$d7sx&g!u3pn0d28kp2ei%")
	v.SetDefault("adminDefaultPassword", "Admin@123")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("jwtExpirationDelta", 4*time.Hour)
	v.SetDefault("databasePath", "student_data.db")
	v.SetDefault("uploadsRoot", "uploads")
	v.SetDefault("reportLogoPath", "assets/logo.png")
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:                v.GetBool("debug"),
		TestMode:             v.GetBool("testMode"),
		Env:                  env,
		AppName:              v.GetString("appName"),
		InstitutionName:      v.GetString("institutionName"),
		SecretKey:            v.GetString("secretKey"),
		AdminDefaultPassword: v.GetString("adminDefaultPassword"),
		RollbarToken:         v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:            v.GetString("serverAddress"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("databasePath"),
		},
		Uploads: UploadsConfig{
			Root: v.GetString("uploadsRoot"),
		},
		Report: ReportConfig{
			LogoPath: v.GetString("reportLogoPath"),
		},
	}
	return conf, nil
}
