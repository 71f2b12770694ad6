package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProofStorageLocal = "local"
	ProofStorageS3    = "s3"
)

type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"fulfillment"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// ShippingFee is a flat fee in minor currency units.
	ShippingFee int64 `envconfig:"SHIPPING_FEE" default:"30000"`

	PaymentURL          string        `envconfig:"PAYMENT_URL" default:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	PaymentTerminalCode string        `envconfig:"PAYMENT_TERMINAL_CODE"`
	PaymentHashSecret   string        `envconfig:"PAYMENT_HASH_SECRET"`
	PaymentReturnURL    string        `envconfig:"PAYMENT_RETURN_URL"`
	PaymentLocale       string        `envconfig:"PAYMENT_LOCALE" default:"vn"`
	PaymentExpireAfter  time.Duration `envconfig:"PAYMENT_EXPIRE_AFTER" default:"15m"`

	// Empty KafkaBrokers disables the event publisher.
	KafkaBrokers    string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderTopic string `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`

	// Empty RedisAddr disables the order cache.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	OrderCacheTTL time.Duration `envconfig:"ORDER_CACHE_TTL" default:"5m"`

	ProofStorage    string `envconfig:"PROOF_STORAGE" default:"local"`
	ProofLocalDir   string `envconfig:"PROOF_LOCAL_DIR" default:"./data/proofs"`
	ProofPublicBase string `envconfig:"PROOF_PUBLIC_BASE" default:"/static/proofs"`
	ProofS3Bucket   string `envconfig:"PROOF_S3_BUCKET"`
	ProofS3Region   string `envconfig:"PROOF_S3_REGION" default:"ap-southeast-1"`
	ProofS3Prefix   string `envconfig:"PROOF_S3_PREFIX" default:"proofs"`

	OTLPEndpoint     string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampleRatio float64 `envconfig:"TRACE_SAMPLE_RATIO" default:"1"`

	VoucherExpirySchedule string        `envconfig:"VOUCHER_EXPIRY_SCHEDULE" default:"0 */5 * * * *"`
	StalePaymentSchedule  string        `envconfig:"STALE_PAYMENT_SCHEDULE" default:"0 */10 * * * *"`
	StalePaymentAge       time.Duration `envconfig:"STALE_PAYMENT_AGE" default:"30m"`
}

// LoadConfig reads envFile into the environment when it exists, then fills
// Config from the environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.ShippingFee < 0 {
		problems = append(problems, fmt.Errorf("SHIPPING_FEE must not be negative, got %d", c.ShippingFee))
	}
	if c.PaymentTerminalCode == "" || c.PaymentHashSecret == "" {
		problems = append(problems, errors.New("PAYMENT_TERMINAL_CODE and PAYMENT_HASH_SECRET are required"))
	}
	switch c.ProofStorage {
	case ProofStorageLocal:
	case ProofStorageS3:
		if c.ProofS3Bucket == "" {
			problems = append(problems, errors.New("PROOF_S3_BUCKET is required when PROOF_STORAGE=s3"))
		}
	default:
		problems = append(problems, fmt.Errorf("PROOF_STORAGE must be %q or %q, got %q",
			ProofStorageLocal, ProofStorageS3, c.ProofStorage))
	}
	if c.StalePaymentAge <= 0 {
		problems = append(problems, errors.New("STALE_PAYMENT_AGE must be positive"))
	}
	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
