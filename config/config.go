package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/serendibgo/rental-api/models"
)

// Config holds the project config values
type Config struct {
	URL                       string
	DatabaseName              string
	BaseURL                   string
	Port                      string
	Environment               string
	JWTSecret                 string
	TokenTTL                  time.Duration
	SendGridAPIKey            string
	EmailFrom                 string
	EmailNotificationsEnabled bool
	RequestTimeout            time.Duration
	SchedulerEnabled          bool
}

// showErrorDetail is flipped on for development so failure bodies carry the
// wrapped error and its stack
var showErrorDetail bool

// New sets up all config related services
func New() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "production")

	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	showErrorDetail = env == "development" || env == "local"

	return &Config{
		URL:                       os.Getenv("DB_URI"),
		DatabaseName:              os.Getenv("DB_NAME"),
		BaseURL:                   os.Getenv("BASE_URL"),
		Port:                      getEnv("PORT", "8080"),
		Environment:               env,
		JWTSecret:                 os.Getenv("JWT_SECRET"),
		TokenTTL:                  getDuration("TOKEN_TTL", 24*time.Hour),
		SendGridAPIKey:            os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:                 getEnv("EMAIL_FROM", "no-reply@serendibgo.lk"),
		EmailNotificationsEnabled: getBool("EMAIL_NOTIFICATIONS_ENABLED", false),
		RequestTimeout:            getDuration("REQUEST_TIMEOUT", 30*time.Second),
		SchedulerEnabled:          getBool("SCHEDULER_ENABLED", true),
	}
}

// setLogger picks a zap configuration for the environment
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "local":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	default:
		return zap.NewProduction()
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	if httpStatusCode >= http.StatusInternalServerError {
		zap.S().Errorw(message, "status", httpStatusCode, "error", err)
	} else {
		zap.S().Debugw(message, "status", httpStatusCode, "error", err)
	}

	body := models.ErrorMessageResponse{Success: false, Message: message}
	if showErrorDetail && err != nil {
		body.Error = fmt.Sprintf("%+v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
