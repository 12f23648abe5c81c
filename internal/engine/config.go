package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска сервера. Собирается из переменных
// окружения ELEMENTAL_*.
type Config struct {
	// Addr - адрес, на котором слушает HTTP-сервер.
	Addr string `env:"ELEMENTAL_ADDR" envDefault:":8080"`

	// DataDir - каталог контента (spells.json).
	DataDir string `env:"ELEMENTAL_DATA_DIR" envDefault:"data"`

	// Seed - зерно генерации по умолчанию для новых сессий.
	// Ноль означает случайное зерно на каждую сессию; явное значение
	// делает партии воспроизводимыми без указания seed в запросе.
	Seed int64 `env:"ELEMENTAL_SEED" envDefault:"0"`

	// ReplayDir - каталог журналов повторов. Пустая строка отключает запись.
	ReplayDir string `env:"ELEMENTAL_REPLAY_DIR" envDefault:""`

	// LogLevel и LogFormat - параметры pkg/logger (debug/info/..., text/json).
	LogLevel  string `env:"ELEMENTAL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ELEMENTAL_LOG_FORMAT" envDefault:"text"`
}

// LoadConfig читает конфигурацию из окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}
