package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, schedules)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	App       AppConfig
	Payment   PaymentConfig
	Invoicing InvoicingConfig
	Mail      MailConfig
	Kafka     KafkaConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Berlin"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Berlin"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// AppConfig holds the business constants of the checkout pipeline.
type AppConfig struct {
	PublicBaseURL     string        `envconfig:"APP_PUBLIC_BASE_URL" required:"true"`
	VATRate           string        `envconfig:"APP_VAT_RATE" default:"0.19"`
	AccessWindow      time.Duration `envconfig:"APP_ACCESS_WINDOW" default:"720h"`
	ReminderLookahead time.Duration `envconfig:"APP_REMINDER_LOOKAHEAD" default:"72h"`
	PlasticCardName   string        `envconfig:"APP_PLASTIC_CARD_NAME" default:"Plastic certificate card"`
	NodeID            int64         `envconfig:"APP_NODE_ID" default:"1"`
}

type PaymentConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	Currency      string `envconfig:"PAYMENT_CURRENCY" default:"eur"`
	SuccessPath   string `envconfig:"PAYMENT_SUCCESS_PATH" default:"/checkout/success"`
	CancelPath    string `envconfig:"PAYMENT_CANCEL_PATH" default:"/checkout/cancel"`
}

type InvoicingConfig struct {
	BaseURL string        `envconfig:"INVOICING_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"INVOICING_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"INVOICING_TIMEOUT" default:"10s"`
}

type MailConfig struct {
	Host     string        `envconfig:"SMTP_HOST" required:"true"`
	Port     string        `envconfig:"SMTP_PORT" default:"587"`
	Username string        `envconfig:"SMTP_USERNAME"`
	Password string        `envconfig:"SMTP_PASSWORD"`
	From     string        `envconfig:"MAIL_FROM" required:"true"`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"10s"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type SchedulerConfig struct {
	Enabled               bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	TimeZone              string `envconfig:"SCHEDULER_TIMEZONE" default:"Europe/Berlin"`
	ExpireSpec            string `envconfig:"SCHEDULER_EXPIRE_SPEC" default:"0 0 * * *"`
	ExpiryReminderSpec    string `envconfig:"SCHEDULER_EXPIRY_REMINDER_SPEC" default:"0 9 * * *"`
	PracticalReminderSpec string `envconfig:"SCHEDULER_PRACTICAL_REMINDER_SPEC" default:"0 8 * * *"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		App: AppConfig{
			PublicBaseURL:     "http://localhost:3000",
			VATRate:           "0.19",
			AccessWindow:      30 * 24 * time.Hour,
			ReminderLookahead: 3 * 24 * time.Hour,
			PlasticCardName:   "Plastic certificate card",
			NodeID:            1,
		},
		Payment: PaymentConfig{
			SecretKey:     "sk_test_dummy",
			WebhookSecret: "whsec_test",
			Currency:      "eur",
			SuccessPath:   "/checkout/success",
			CancelPath:    "/checkout/cancel",
		},
		Invoicing: InvoicingConfig{
			BaseURL: "http://localhost:9999",
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
		Mail: MailConfig{
			Host:    "localhost",
			Port:    "1025",
			From:    "no-reply@example.com",
			Timeout: 2 * time.Second,
		},
		Scheduler: SchedulerConfig{
			Enabled:               false,
			TimeZone:              "UTC",
			ExpireSpec:            "0 0 * * *",
			ExpiryReminderSpec:    "0 9 * * *",
			PracticalReminderSpec: "0 8 * * *",
		},
	}
}
