package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type MathBridgeConfig struct {
	Env            string `yaml:"env" env-default:"local"`
	InstanceID     string `yaml:"instance_id" env:"INSTANCE_ID" env-default:"mathbridge-1"`
	HTTPServer     `yaml:"http_server"`
	AppDB          `yaml:"app_db"`
	KafkaService   `yaml:"kafka-service"`
	SePay          `yaml:"sepay"`
	PayOS          `yaml:"payos"`
	SMTP           `yaml:"smtp"`
	Auth           `yaml:"auth"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type AppDB struct {
	Dsn string `yaml:"dsn" env:"APP_DB_DSN"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"notifications"`
}

type SePay struct {
	APIKey string `yaml:"api_key" env:"SEPAY_API_KEY"`
}

type PayOS struct {
	ChecksumKey string `yaml:"checksum_key" env:"PAYOS_CHECKSUM_KEY"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

func MustLoad() *MathBridgeConfig {

	// Processing env config variable and file
	configPath := os.Getenv("MATHBRIDGE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("MATHBRIDGE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg MathBridgeConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
