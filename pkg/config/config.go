package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Metrics MetricsConfig
	Ledger  LedgerConfig
	Reports ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env   string // development, staging, production
	Name  string
	Level string // nivel de log
}

// DBConfig configuración de PostgreSQL. Si DatabaseURL no está vacío se usa
// como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido, si no
// el construido campo a campo.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig listener dedicado de Prometheus.
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// Addr dirección de escucha del endpoint de métricas.
func (c MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LedgerConfig cotas por defecto al crear filas de inventario implícitamente.
type LedgerConfig struct {
	DefaultMinStock int
	DefaultMaxStock int
}

// ReportsConfig umbrales del reporte de stock bajo.
type ReportsConfig struct {
	LowStockThreshold int // umbral por defecto
	MaxThreshold      int // cota superior admitida para el parámetro
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// un archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:   v.GetString("APP_ENV"),
			Name:  v.GetString("APP_NAME"),
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Port:    v.GetInt("METRICS_PORT"),
		},
		Ledger: LedgerConfig{
			DefaultMinStock: v.GetInt("LEDGER_DEFAULT_MIN"),
			DefaultMaxStock: v.GetInt("LEDGER_DEFAULT_MAX"),
		},
		Reports: ReportsConfig{
			LowStockThreshold: v.GetInt("REPORTS_LOW_STOCK_THRESHOLD"),
			MaxThreshold:      v.GetInt("REPORTS_MAX_THRESHOLD"),
		},
	}

	if cfg.Ledger.DefaultMinStock > cfg.Ledger.DefaultMaxStock {
		return nil, fmt.Errorf("config: LEDGER_DEFAULT_MIN (%d) mayor que LEDGER_DEFAULT_MAX (%d)",
			cfg.Ledger.DefaultMinStock, cfg.Ledger.DefaultMaxStock)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "logitrack-api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "logitrack")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "logitrack-api")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PORT", 9090)
	v.SetDefault("LEDGER_DEFAULT_MIN", 10)
	v.SetDefault("LEDGER_DEFAULT_MAX", 1000)
	v.SetDefault("REPORTS_LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("REPORTS_MAX_THRESHOLD", 1000)
}
