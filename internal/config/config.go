package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App       `yaml:"app"`
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
	Postgres  Postgres  `yaml:"postgres"`
	Redis     Redis     `yaml:"redis"`
	JWT       JWT       `yaml:"jwt"`
	Mail      Mail      `yaml:"mail"`
	Kafka     Kafka     `yaml:"kafka"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Cleanup   Cleanup   `yaml:"cleanup"`
}

type App struct {
	Name string `yaml:"name" env:"APP_NAME" env-default:"vehicle-rental-api"`
	Env  string `yaml:"env" env:"APP_ENV" env-default:"production"`
}

func (a App) IsDevelopment() bool {
	return a.Env == "development"
}

type HTTP struct {
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	// AllowedOrigins is the CORS allow list for the web frontend.
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DBName          string        `yaml:"dbname" env:"DB_NAME" env-default:"vehicle_rental"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"1h"`
}

type Mail struct {
	// Driver selects the notifier: smtp, kafka or log.
	Driver      string `yaml:"driver" env:"MAIL_DRIVER" env-default:"log"`
	Host        string `yaml:"host" env:"EMAIL_HOST" env-default:"smtp.gmail.com"`
	Port        int    `yaml:"port" env:"EMAIL_PORT" env-default:"465"`
	Username    string `yaml:"username" env:"EMAIL_USER"`
	Password    string `yaml:"password" env:"EMAIL_PASSWORD"`
	From        string `yaml:"from" env:"EMAIL_FROM" env-default:"Vehicle Rental <no-reply@vehicle-rental.local>"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"rental-notifications"`
}

type RateLimit struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"100"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1h"`
}

type Cleanup struct {
	Interval time.Duration `yaml:"interval" env:"CLEANUP_INTERVAL" env-default:"1m"`
}

// New loads .env into the environment, then reads path if it exists and
// lets environment variables override it.
func New(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	return cfg, nil
}
