package config

import (
	"fmt"

	"github.com/fundrazor/fundrazor/internal/db"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Database       db.Config
	ServerAddr     string
	AllowedOrigins []string
	AuthToken      string
	MigrationsPath string
}

// Load reads config.yaml from the given path, with environment overrides
// (DB_HOST, SERVER_ADDR, AUTH_TOKEN and friends). Missing file means defaults.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database:       db.DefaultConfig(),
		ServerAddr:     ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		MigrationsPath: "./migrations",
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides

	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("server.addr", "SERVER_ADDR")
	v.BindEnv("server.migrations_path", "SERVER_MIGRATIONS_PATH")
	v.BindEnv("auth.token", "AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.addr") {
		cfg.ServerAddr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("server.migrations_path") {
		cfg.MigrationsPath = v.GetString("server.migrations_path")
	}
	if v.IsSet("auth.token") {
		cfg.AuthToken = v.GetString("auth.token")
	}

	return cfg, nil
}
