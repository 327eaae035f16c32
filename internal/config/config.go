package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone es la zona horaria de la clínica, se inicializa en NewConfig.
// El motor trabaja siempre en hora local de la instalación.
var TimeZone *time.Location = time.UTC

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Santiago"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Postgres struct {
		DSN string `env:"POSTGRES_DSN"`
	}

	Auth struct {
		Username string `env:"AUTH_BASIC_USERNAME" envDefault:"box_availability"`
		Password string `env:"AUTH_BASIC_PASSWORD" envDefault:"box_availability"`
	}

	RabbitMQ struct {
		Enabled         bool   `env:"RABBITMQ_ENABLED"`
		AmqpURI         string `env:"RABBITMQ_URL"`
		EventsExchange  string `env:"RABBITMQ_EVENTS_EXCHANGE" envDefault:"clinibox.events"`
		BlockQueueName  string `env:"RABBITMQ_BLOCK_QUEUE" envDefault:"box-availability.blocks"`
		BlockQueueBind  string `env:"RABBITMQ_BLOCK_QUEUE_BIND" envDefault:"clinibox.*.block.*"`
		AuditRoutingKey string `env:"RABBITMQ_AUDIT_ROUTING_KEY" envDefault:"clinibox.box-availability.audit"`
		MailRoutingKey  string `env:"RABBITMQ_MAIL_ROUTING_KEY" envDefault:"clinibox.box-availability.mail"`
	}

	Cache struct {
		Enabled          bool `env:"CACHE_ENABLED"`
		AvailabilitySize int  `env:"CACHE_AVAILABILITY_SIZE" envDefault:"1000"`
		DirectoryTTLMin  int  `env:"CACHE_DIRECTORY_TTL_MINUTES" envDefault:"30"`
	}

	Engine struct {
		MinSlotMinutes int `env:"ENGINE_MIN_SLOT_MINUTES" envDefault:"15"`
		MaxRangeDays   int `env:"ENGINE_MAX_RANGE_DAYS" envDefault:"730"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Normalizamos el ambiente a minúsculas
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.UTC
	}
	TimeZone = loc

	// Sin RabbitMQ no hay invalidación de caché entre instancias,
	// por lo tanto el caché queda deshabilitado también
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
