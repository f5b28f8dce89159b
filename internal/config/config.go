package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
	CRM       CRMConfig
	Webhook   WebhookConfig
	Payments  PaymentsConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// PricingConfig mirrors pricing.Config with environment-friendly types
type PricingConfig struct {
	SmallRushFeeCents  int64
	LargeRushFeeCents  int64
	RushThresholdCents int64
	TPSRateBps         decimal.Decimal
	TVQRateBps         decimal.Decimal
}

type CRMConfig struct {
	BaseURL      string
	APIKey       string
	ClientID     string
	ClientSecret string
	TokenURL     string
	LocationID   string
	ReadyTag     string
	Timeout      time.Duration
}

// Enabled reports whether enough is configured to call the CRM
func (c CRMConfig) Enabled() bool {
	return c.BaseURL != "" && (c.APIKey != "" || (c.ClientID != "" && c.TokenURL != ""))
}

type WebhookConfig struct {
	OrderStatusURL string
	Secret         string
	Timeout        time.Duration
}

type PaymentsConfig struct {
	WebhookSecret  string
	DepositPercent decimal.Decimal
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.L().Warn(".env file not found, using environment variables", zap.Error(err))
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "hottecouture-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "hottecouture")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Montreal")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRICING_SMALL_RUSH_FEE_CENTS", 3000)
	viper.SetDefault("PRICING_LARGE_RUSH_FEE_CENTS", 6000)
	viper.SetDefault("PRICING_RUSH_THRESHOLD_CENTS", 0)
	viper.SetDefault("PRICING_TPS_RATE_BPS", "500")
	viper.SetDefault("PRICING_TVQ_RATE_BPS", "997.5")
	viper.SetDefault("CRM_READY_TAG", "ready-for-pickup")
	viper.SetDefault("CRM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("WEBHOOK_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DEPOSIT_PERCENT", "50")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Pricing: PricingConfig{
			SmallRushFeeCents:  viper.GetInt64("PRICING_SMALL_RUSH_FEE_CENTS"),
			LargeRushFeeCents:  viper.GetInt64("PRICING_LARGE_RUSH_FEE_CENTS"),
			RushThresholdCents: viper.GetInt64("PRICING_RUSH_THRESHOLD_CENTS"),
			TPSRateBps:         getDecimal("PRICING_TPS_RATE_BPS"),
			TVQRateBps:         getDecimal("PRICING_TVQ_RATE_BPS"),
		},
		CRM: CRMConfig{
			BaseURL:      viper.GetString("CRM_BASE_URL"),
			APIKey:       viper.GetString("CRM_API_KEY"),
			ClientID:     viper.GetString("CRM_CLIENT_ID"),
			ClientSecret: viper.GetString("CRM_CLIENT_SECRET"),
			TokenURL:     viper.GetString("CRM_TOKEN_URL"),
			LocationID:   viper.GetString("CRM_LOCATION_ID"),
			ReadyTag:     viper.GetString("CRM_READY_TAG"),
			Timeout:      time.Duration(viper.GetInt("CRM_TIMEOUT_SECONDS")) * time.Second,
		},
		Webhook: WebhookConfig{
			OrderStatusURL: viper.GetString("WEBHOOK_ORDER_STATUS_URL"),
			Secret:         viper.GetString("WEBHOOK_SECRET"),
			Timeout:        time.Duration(viper.GetInt("WEBHOOK_TIMEOUT_SECONDS")) * time.Second,
		},
		Payments: PaymentsConfig{
			WebhookSecret:  viper.GetString("PAYMENTS_WEBHOOK_SECRET"),
			DepositPercent: getDecimal("DEPOSIT_PERCENT"),
		},
	}
}

// ToDomain converts the loaded values into the calculator's configuration
func (p PricingConfig) ToDomain() pricing.Config {
	return pricing.Config{
		SmallRushFeeCents:  p.SmallRushFeeCents,
		LargeRushFeeCents:  p.LargeRushFeeCents,
		RushThresholdCents: p.RushThresholdCents,
		TPSRateBps:         p.TPSRateBps,
		TVQRateBps:         p.TVQRateBps,
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// getDecimal parses a decimal setting. Rates like 997.5 bps do not fit an int.
func getDecimal(key string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		logger.L().Warn("invalid decimal setting, using zero", zap.String("key", key), zap.String("value", raw))
		return decimal.Zero
	}
	return d
}
