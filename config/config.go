package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Store     StoreConfig
	Registry  RegistryConfig
	Admission AdmissionConfig
	Breaker   BreakerConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StoreConfig selects the remote patient store. The memory driver simulates
// network latency with LoadDelay and InsertDelay.
type StoreConfig struct {
	Driver      string
	LoadDelay   time.Duration
	InsertDelay time.Duration
	LoadTimeout time.Duration
}

type RegistryConfig struct {
	PageSize            int
	MaxPageSize         int
	StrictAdmissionDate bool
}

type AdmissionConfig struct {
	LockTTL       time.Duration
	NotifyChannel string
}

type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "inpatient-registration")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("APP_CORS_ORIGIN", "*")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "rawat_inap")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("DB_AUTO_MIGRATE", false)

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("STORE_DRIVER", StoreDriverMemory)
	viper.SetDefault("STORE_LOAD_DELAY", "500ms")
	viper.SetDefault("STORE_INSERT_DELAY", "1s")
	viper.SetDefault("STORE_LOAD_TIMEOUT", "10s")

	viper.SetDefault("REGISTRY_PAGE_SIZE", 10)
	viper.SetDefault("REGISTRY_MAX_PAGE_SIZE", 100)
	viper.SetDefault("REGISTRY_STRICT_ADMISSION_DATE", false)

	viper.SetDefault("ADMISSION_LOCK_TTL", "10s")
	viper.SetDefault("ADMISSION_NOTIFY_CHANNEL", "inpatient:notifications")

	viper.SetDefault("BREAKER_MAX_REQUESTS", 3)
	viper.SetDefault("BREAKER_INTERVAL", "60s")
	viper.SetDefault("BREAKER_TIMEOUT", "30s")
	viper.SetDefault("BREAKER_FAILURE_THRESHOLD", 5)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()
	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("APP_LOG_LEVEL"),
			CORSOrigin: viper.GetString("APP_CORS_ORIGIN"),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			TimeZone:    viper.GetString("DB_TIMEZONE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Driver:      viper.GetString("STORE_DRIVER"),
			LoadDelay:   viper.GetDuration("STORE_LOAD_DELAY"),
			InsertDelay: viper.GetDuration("STORE_INSERT_DELAY"),
			LoadTimeout: viper.GetDuration("STORE_LOAD_TIMEOUT"),
		},
		Registry: RegistryConfig{
			PageSize:            viper.GetInt("REGISTRY_PAGE_SIZE"),
			MaxPageSize:         viper.GetInt("REGISTRY_MAX_PAGE_SIZE"),
			StrictAdmissionDate: viper.GetBool("REGISTRY_STRICT_ADMISSION_DATE"),
		},
		Admission: AdmissionConfig{
			LockTTL:       viper.GetDuration("ADMISSION_LOCK_TTL"),
			NotifyChannel: viper.GetString("ADMISSION_NOTIFY_CHANNEL"),
		},
		Breaker: BreakerConfig{
			MaxRequests:      viper.GetUint32("BREAKER_MAX_REQUESTS"),
			Interval:         viper.GetDuration("BREAKER_INTERVAL"),
			Timeout:          viper.GetDuration("BREAKER_TIMEOUT"),
			FailureThreshold: viper.GetUint32("BREAKER_FAILURE_THRESHOLD"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Registry.PageSize <= 0 {
		return fmt.Errorf("REGISTRY_PAGE_SIZE must be positive, got %d", c.Registry.PageSize)
	}
	if c.Registry.MaxPageSize < c.Registry.PageSize {
		return fmt.Errorf("REGISTRY_MAX_PAGE_SIZE (%d) must not be below REGISTRY_PAGE_SIZE (%d)", c.Registry.MaxPageSize, c.Registry.PageSize)
	}

	return nil
}
