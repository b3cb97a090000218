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
	SMTP  SMTPConfig
	Minio MinioConfig
	OTP   OTPConfig
}

type AppConfig struct {
	Port             string
	Env              string
	ResetPasswordURL string
	CORSOrigin       string
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
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

type MinioConfig struct {
	Host      string
	Port      string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

type OTPConfig struct {
	TTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	otpTTL, err := time.ParseDuration(viper.GetString("OTP_TTL"))
	if err != nil {
		otpTTL = 5 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:             viper.GetString("APP_PORT"),
			Env:              viper.GetString("APP_ENV"),
			ResetPasswordURL: viper.GetString("APP_RESET_PASSWORD_URL"),
			CORSOrigin:       viper.GetString("APP_CORS_ORIGIN"),
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
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetString("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			Sender:   viper.GetString("SMTP_SENDER"),
		},
		Minio: MinioConfig{
			Host:      viper.GetString("MINIO_HOST"),
			Port:      viper.GetString("MINIO_PORT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			PublicURL: viper.GetString("MINIO_PUBLIC_URL"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		OTP: OTPConfig{
			TTL: otpTTL,
		},
	}

	return config, nil
}
