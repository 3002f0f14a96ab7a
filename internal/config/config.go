package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

type RoutingConfig struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
	Profile string `yaml:"profile"`
}

type MapConfig struct {
	CenterLat float64 `yaml:"centerLat" validate:"gte=-90,lte=90"`
	CenterLng float64 `yaml:"centerLng" validate:"gte=-180,lte=180"`
	Zoom      int     `yaml:"zoom" validate:"gte=0,lte=22"`
	TileURL   string  `yaml:"tileURL" validate:"omitempty,url"`
}

type CacheConfig struct {
	RedisAddr string `yaml:"redisAddr"`
	TTLHours  int    `yaml:"ttlHours" validate:"gte=0"`
}

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Routing RoutingConfig `yaml:"routing"`
	Map     MapConfig     `yaml:"map"`
	Cache   CacheConfig   `yaml:"cache"`
}

// Default returns a config that works without any file: public OSRM,
// a world-ish viewport and the local sqlite cache.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: 8080},
		Routing: RoutingConfig{BaseURL: "https://router.project-osrm.org", Profile: "driving"},
		Map:     MapConfig{CenterLat: 35.68, CenterLng: 139.77, Zoom: 11},
		Cache:   CacheConfig{TTLHours: 24},
	}
}

// Load reads the first existing path, layers it over the defaults and
// validates the result. A missing file is not an error; the defaults
// stand.
func Load(paths ...string) (AppConfig, error) {
	cfg := Default()

	var data []byte
	var readErr error
	found := false
	for _, p := range paths {
		data, readErr = os.ReadFile(p)
		if readErr == nil {
			found = true
			break
		}
	}
	if !found {
		if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("load config: %w", readErr)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("load config: parse yaml: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("load config: validate: %w", err)
	}

	return cfg, nil
}
