package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disable/require

	RedisAddr     string // カートのスナップショット保存先
	RedisPassword string
	RedisDB       int

	JWTSecret  string        // セッショントークン署名シークレット
	SessionTTL time.Duration // セッションの有効期間（24h）
	CartIdle   time.Duration // メモリ上のカートを外すまでの時間（30m）

	PaymentsBaseURL string        // 決済プロバイダ
	PaymentsAPIKey  string        // 決済APIキー
	PaymentsTimeout time.Duration // 決済呼び出しのタイムアウト（10s）

	AppURL string // 決済後の戻り先（success/cancel）を組み立てる

	FreeShippingThreshold decimal.Decimal // 送料無料の閾値（50）
	ShippingFlatFee       decimal.Decimal // 送料（9.99）
	TaxRate               decimal.Decimal // 税率（0.08）

	SeedCatalog  bool   // 起動時にサンプル商品を投入
	CookieSecure bool   // cookieのSecure属性
	APIDomain    string // cookieのDomain（空ならホストのみ）
	GoEnv        string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port: os.Getenv("PORT"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PaymentsBaseURL: os.Getenv("PAYMENTS_BASE_URL"),
		PaymentsAPIKey:  os.Getenv("PAYMENTS_API_KEY"),

		AppURL: os.Getenv("APP_URL"),

		APIDomain: os.Getenv("API_DOMAIN"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	//数値・期間（未設定ならデフォルト）
	if cfg.PostgresPort, err = atoiDefault("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = atoiDefault("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationDefault("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CartIdle, err = durationDefault("CART_IDLE", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.PaymentsTimeout, err = durationDefault("PAYMENTS_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FreeShippingThreshold, err = decimalDefault("FREE_SHIPPING_THRESHOLD", "50"); err != nil {
		return Config{}, err
	}
	if cfg.ShippingFlatFee, err = decimalDefault("SHIPPING_FLAT_FEE", "9.99"); err != nil {
		return Config{}, err
	}
	if cfg.TaxRate, err = decimalDefault("TAX_RATE", "0.08"); err != nil {
		return Config{}, err
	}
	if cfg.SeedCatalog, err = boolDefault("SEED_CATALOG", false); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolDefault("COOKIE_SECURE", true); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		if cfg.PostgresHost == "" {
			return Config{}, fmt.Errorf("POSTGRES_HOST is required")
		}
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PaymentsBaseURL == "" {
		return Config{}, fmt.Errorf("PAYMENTS_BASE_URL is required")
	}
	if cfg.PaymentsAPIKey == "" {
		return Config{}, fmt.Errorf("PAYMENTS_API_KEY is required")
	}
	if cfg.AppURL == "" {
		return Config{}, fmt.Errorf("APP_URL is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

// DATABASE_URLが無ければ個別の値から組み立てる
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func decimalDefault(key string, def string) (decimal.Decimal, error) {
	v := getenv(key, def)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be number: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func boolDefault(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
