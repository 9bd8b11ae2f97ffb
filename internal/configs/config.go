package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type StdoutLogConfig struct {
	Level  string // По умолчанию DEBUG
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию INFO
}

// HeroConfig - слайдшоу на главной странице
type HeroConfig struct {
	RotationInterval time.Duration
	// Пауза и выбранная картинка посетителя без открытых потоков забываются через SessionTTL
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// TourSessionConfig - незавершенные мастера записи на просмотр
type TourSessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
	Hero         HeroConfig
	TourSession  TourSessionConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env файл не обязателен: без него используются переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		if len(envPath) > 0 {
			// Явно указанный файл должен существовать
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: Could not load .env file: %v. Using process environment.\n", err)
	}

	cfg := &AppConfig{}

	cfg.AppName = os.Getenv("APP_NAME")
	if cfg.AppName == "" {
		cfg.AppName = "showcase-service" // Устанавливаем default
	}

	// Читаем конфигурацию для REST
	cfg.Rest.PORT = os.Getenv("PORT")
	if cfg.Rest.PORT == "" {
		cfg.Rest.PORT = "8080"
	}
	if _, err := strconv.Atoi(cfg.Rest.PORT); err != nil {
		return nil, fmt.Errorf("PORT must be a number, got %q", cfg.Rest.PORT)
	}

	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	cfg.Rest.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.Hero.RotationInterval = getEnvAsDuration("HERO_ROTATION_INTERVAL", 5*time.Second)
	if cfg.Hero.RotationInterval <= 0 {
		return nil, fmt.Errorf("HERO_ROTATION_INTERVAL must be positive, got %s", cfg.Hero.RotationInterval)
	}
	cfg.Hero.SessionTTL = getEnvAsDuration("HERO_SESSION_TTL", 30*time.Minute)
	cfg.Hero.SweepInterval = getEnvAsDuration("HERO_SESSION_SWEEP_INTERVAL", time.Minute)
	if cfg.Hero.SessionTTL <= 0 || cfg.Hero.SweepInterval <= 0 {
		return nil, fmt.Errorf("HERO_SESSION_TTL and HERO_SESSION_SWEEP_INTERVAL must be positive")
	}

	cfg.TourSession.TTL = getEnvAsDuration("TOUR_SESSION_TTL", 30*time.Minute)
	cfg.TourSession.SweepInterval = getEnvAsDuration("TOUR_SESSION_SWEEP_INTERVAL", time.Minute)
	if cfg.TourSession.TTL <= 0 || cfg.TourSession.SweepInterval <= 0 {
		return nil, fmt.Errorf("TOUR_SESSION_TTL and TOUR_SESSION_SWEEP_INTERVAL must be positive")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAs читает переменную через parse. Если значение не разбирается,
// пишет предупреждение и возвращает значение по умолчанию.
func getEnvAs[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed: %v. Using default value: %v\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	return getEnvAs(key, defaultValue, strconv.Atoi)
}

func getEnvAsBool(key string, defaultValue bool) bool {
	return getEnvAs(key, defaultValue, strconv.ParseBool)
}

// getEnvAsDuration понимает формат time.ParseDuration ("5s", "30m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnvAs(key, defaultValue, time.ParseDuration)
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
