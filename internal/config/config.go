package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// splitOrigins parses a comma-separated origin list from the environment.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Jobs     JobsConfig
	CRM      CRMConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JobsConfig configures the scheduled job clients. Endpoint is the GraphQL
// URL the jobs call; it is injected at job construction rather than read from
// a process-wide constant.
type JobsConfig struct {
	Endpoint          string
	HeartbeatLog      string
	LowStockLog       string
	ReminderLog       string
	HeartbeatSchedule string
	LowStockSchedule  string
	ReminderSchedule  string
	ReminderWindow    int // trailing window in days for the order reminder sweep
}

// CRMConfig carries business policy knobs for the CRM service.
type CRMConfig struct {
	LowStockThreshold int
	RestockAmount     int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GRAPHQL_ENDPOINT", "http://localhost:8080/graphql")
	viper.SetDefault("HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt")
	viper.SetDefault("REMINDER_LOG", "/tmp/order_reminders_log.txt")
	viper.SetDefault("HEARTBEAT_SCHEDULE", "*/5 * * * *")
	viper.SetDefault("LOW_STOCK_SCHEDULE", "0 */12 * * *")
	viper.SetDefault("REMINDER_SCHEDULE", "0 8 * * *")
	viper.SetDefault("REMINDER_WINDOW_DAYS", 7)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("RESTOCK_AMOUNT", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Jobs: JobsConfig{
			Endpoint:          viper.GetString("GRAPHQL_ENDPOINT"),
			HeartbeatLog:      viper.GetString("HEARTBEAT_LOG"),
			LowStockLog:       viper.GetString("LOW_STOCK_LOG"),
			ReminderLog:       viper.GetString("REMINDER_LOG"),
			HeartbeatSchedule: viper.GetString("HEARTBEAT_SCHEDULE"),
			LowStockSchedule:  viper.GetString("LOW_STOCK_SCHEDULE"),
			ReminderSchedule:  viper.GetString("REMINDER_SCHEDULE"),
			ReminderWindow:    viper.GetInt("REMINDER_WINDOW_DAYS"),
		},
		CRM: CRMConfig{
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
			RestockAmount:     viper.GetInt("RESTOCK_AMOUNT"),
		},
	}
}
