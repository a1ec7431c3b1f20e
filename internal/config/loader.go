package config

import (
	"fmt"

	"github.com/ayioka/momo-analysis/internal/db"
	"github.com/spf13/viper"
)

// Config aggregates service configuration.
type Config struct {
	DB   db.Config
	Addr string
}

// Load reads config.yaml from configPath, with environment overrides
// (DB_DATABASE_HOST, DB_SERVER_ADDR, ...). Missing files fall back to
// defaults plus environment variables.
func Load(configPath string) (Config, error) {
	cfg := Config{
		DB:   db.DefaultConfig(),
		Addr: ":8080",
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("DB")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("server.addr")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.DB.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.DB.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.DB.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.DB.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.DB.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.DB.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.addr") {
		cfg.Addr = v.GetString("server.addr")
	}

	return cfg, nil
}
