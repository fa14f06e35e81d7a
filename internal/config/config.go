package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Settings struct {
	Port        string
	DBDriver    string
	DatabaseDSN string
	LogLevel    string

	JWTTTL        time.Duration
	CookieDomain  string
	AllowedOrigin string

	RedisURL string
	CacheTTL time.Duration

	ReportWorkers         int
	ReportQueueSize       int
	CSVReportTimeout      time.Duration
	MonthlyReportTimeout  time.Duration
	MonthlyReportSchedule string
	ReportLogPath         string

	TelegramBotToken string
	TelegramChatID   int64

	BootstrapAdminUsername string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

var App Settings

func Init() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using system environment")
	}

	App = Settings{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN: getEnv("DATABASE_DSN", "quiz.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", 60*time.Second),

		ReportWorkers:         getInt("REPORT_WORKERS", 2),
		ReportQueueSize:       getInt("REPORT_QUEUE_SIZE", 16),
		CSVReportTimeout:      getDuration("CSV_REPORT_TIMEOUT", 60*time.Second),
		MonthlyReportTimeout:  getDuration("MONTHLY_REPORT_TIMEOUT", 60*time.Second),
		MonthlyReportSchedule: getEnv("MONTHLY_REPORT_SCHEDULE", "0 0 1 * *"),
		ReportLogPath:         getEnv("REPORT_LOG_PATH", "reports.log"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   int64(getInt("TELEGRAM_CHAT_ID", 0)),

		BootstrapAdminUsername: getEnv("BOOTSTRAP_ADMIN_USERNAME", "admin"),
		BootstrapAdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@quizmaster.local"),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	initLogger(App.LogLevel)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration %q, using %s", v, fallback)
		return fallback
	}
	return d
}
