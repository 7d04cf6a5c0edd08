package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	CORS  CORSConfig
	Seed  SeedConfig
	Login LoginConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SeedConfig holds the bootstrap administrator account created on first run.
type SeedConfig struct {
	AdminLogin    string
	AdminPassword string
	AdminName     string
	AdminEmail    string
}

// LoginConfig bounds failed login attempts per login name.
type LoginConfig struct {
	MaxAttempts    int
	AttemptsWindow time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 30 * time.Minute
	}

	attemptsWindow, err := time.ParseDuration(viper.GetString("LOGIN_ATTEMPTS_WINDOW"))
	if err != nil {
		attemptsWindow = 15 * time.Minute
	}

	maxAttempts := viper.GetInt("LOGIN_MAX_ATTEMPTS")
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	allowedOrigins := viper.GetStringSlice("CORS_ALLOWED_ORIGINS")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins,
		},
		Seed: SeedConfig{
			AdminLogin:    viper.GetString("DEFAULT_ADMIN_LOGIN"),
			AdminPassword: viper.GetString("DEFAULT_ADMIN_PASSWORD"),
			AdminName:     viper.GetString("DEFAULT_ADMIN_NAME"),
			AdminEmail:    viper.GetString("DEFAULT_ADMIN_EMAIL"),
		},
		Login: LoginConfig{
			MaxAttempts:    maxAttempts,
			AttemptsWindow: attemptsWindow,
		},
	}

	return config, nil
}
