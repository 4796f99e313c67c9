package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
}

type ConfigSchema struct {
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Databases struct {
		// Driver: postgres или sqlite (sqlite - для локальной разработки и тестов)
		Driver   string     `yaml:"driver"`
		Path     string     `yaml:"path"` // путь к файлу sqlite
		Master   DBConfig   `yaml:"master"`
		Replicas []DBConfig `yaml:"replicas"`
	} `yaml:"db"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	RabbitMQ struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Feed struct {
		PageSize  int           `yaml:"page_size"`  // размер страницы, который запрашивает клиент
		SeedPosts int           `yaml:"seed_posts"` // сколько постов генерировать при пустом каталоге
		CacheTTL  time.Duration `yaml:"cache_ttl"`  // TTL кеша страниц ленты
	} `yaml:"feed"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var cfg ConfigSchema
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	AppConfig = &cfg
	return nil
}
