package cycler

import (
	"os"

	"github.com/iwtcode/cyclerAdapter/drivers/maccor"
)

// Config хранит настройки запуска конфигуратора.
type Config struct {
	PlanPath      string
	Driver        string
	OverridesPath string
	LogLevel      string
}

// Load загружает конфигурацию из переменных окружения.
func Load() *Config {
	return &Config{
		PlanPath:      getEnv("CYCLER_PLAN", ""),
		Driver:        getEnv("CYCLER_DRIVER", maccor.DriverName),
		OverridesPath: getEnv("CYCLER_OVERRIDES", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
