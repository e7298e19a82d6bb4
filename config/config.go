package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Block store backend: memory, file, redis or mongo.
	BlockStore     string `mapstructure:"BLOCK_STORE"`
	BlockStoreFile string `mapstructure:"BLOCK_STORE_FILE"`

	// VenueTimezone is the IANA zone of the clinic calendar. Empty means the process local zone.
	VenueTimezone string `mapstructure:"VENUE_TIMEZONE"`

	NotificationsEnabled bool     `mapstructure:"NOTIFICATIONS_ENABLED"`
	SlotTimes            []string `mapstructure:"SLOT_TIMES"`
}

var AppConfig Config

// DefaultSlotTimes is the slot grid offered by the booking flow.
var DefaultSlotTimes = []string{"08:00", "09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinicblocks")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("BLOCK_STORE", "file")
	viper.SetDefault("BLOCK_STORE_FILE", "./data/resource-blocks.json")
	viper.SetDefault("VENUE_TIMEZONE", "")
	viper.SetDefault("NOTIFICATIONS_ENABLED", false)
	viper.SetDefault("SLOT_TIMES", DefaultSlotTimes)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(AppConfig.SlotTimes) == 0 {
		AppConfig.SlotTimes = DefaultSlotTimes
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesRedis reports whether any configured component needs a redis connection.
func UsesRedis() bool {
	return AppConfig.BlockStore == "redis" || AppConfig.NotificationsEnabled
}
