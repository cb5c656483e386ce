package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"scan-ocr/internal/domain/entity"
)

// Config настройки приложения
type Config struct {
	TelegramToken  string `yaml:"telegram_token"`
	Language       string `yaml:"language"`        // rus, eng или rus+eng
	TesseractPath  string `yaml:"tesseract_path"`  // пусто: искать tesseract в PATH
	TessdataPrefix string `yaml:"tessdata_prefix"` // каталог с языковыми моделями
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json или console
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Language:  string(entity.DefaultLanguage),
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load собирает настройки: значения по умолчанию, YAML-файл (если указан),
// .env и переменные окружения. Переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	cfg, err := Read(path, DefaultConfig())
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read накладывает YAML-файл и окружение на base без проверки.
// Вызывающий сам применяет свои значения и вызывает Validate.
func Read(path string, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	overrideFromEnv(&cfg.TelegramToken, "TELEGRAM_TOKEN")
	overrideFromEnv(&cfg.Language, "OCR_LANGUAGE")
	overrideFromEnv(&cfg.TesseractPath, "TESSERACT_PATH")
	overrideFromEnv(&cfg.TessdataPrefix, "TESSDATA_PREFIX")
	overrideFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	overrideFromEnv(&cfg.LogFormat, "LOG_FORMAT")

	return &cfg, nil
}

// Validate проверяет язык и формат журнала
func (c *Config) Validate() error {
	if _, err := entity.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return errors.New("log format must be json or console")
	}
	return nil
}

// DefaultLanguage возвращает язык из настроек
func (c *Config) DefaultLanguage() entity.Language {
	lang, err := entity.ParseLanguage(c.Language)
	if err != nil {
		return entity.DefaultLanguage
	}
	return lang
}

func overrideFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
