package container

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"gopkg.in/yaml.v3"
)

const (
	CacheInMemory = "inmemory"
	CacheRedis    = "redis"
)

// ConfigHTTPServer struct for HTTP ConfigTransport configuration
type ConfigHTTPServer struct {
	Port int `yaml:"port"`
}

// ConfigTransport is a configuration for Admin ConfigTransport: HTTP, gRPC or anything
type ConfigTransport struct {
	HTTP ConfigHTTPServer `yaml:"http"`
}

type ConfigTracing struct {
	Enable         bool   `yaml:"enable"`
	JaegerEndpoint string `yaml:"jaegerEndpoint"`
	Environment    string `yaml:"environment"`
}

// ConfigRedisConn is one redis deployment. Address holds one address in single mode,
// sentinel or cluster node addresses otherwise.
type ConfigRedisConn struct {
	Mode       string   `yaml:"mode"` // single, sentinel or cluster
	Address    []string `yaml:"address"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	DB         int      `yaml:"db"`
	MasterName string   `yaml:"masterName"`
}

// ConfigRedis is keyed by connection label.
type ConfigRedis map[string]ConfigRedisConn

type ConfigCache struct {
	Driver     string `yaml:"driver"` // inmemory or redis
	MaxBytes   int    `yaml:"maxBytes"`
	RedisLabel string `yaml:"redisLabel"`
}

type ConfigServiceApps struct {
	Seed bool `yaml:"seed"`
}

type ConfigServiceCatalog struct {
	Delay       time.Duration `yaml:"delay"`
	CacheExpiry time.Duration `yaml:"cacheExpiry"`
	CachePrefix string        `yaml:"cachePrefix"`
}

type ConfigServiceImport struct {
	Workers  int `yaml:"workers"`
	MaxQueue int `yaml:"maxQueue"`
}

type ConfigServices struct {
	Apps    ConfigServiceApps    `yaml:"apps"`
	Catalog ConfigServiceCatalog `yaml:"catalog"`
	Import  ConfigServiceImport  `yaml:"import"`
}

// Config contains application config
type Config struct {
	Transport ConfigTransport  `yaml:"transport"`
	Log       logger.ZapConfig `yaml:"log"`
	Tracing   ConfigTracing    `yaml:"tracing"`
	Redis     ConfigRedis      `yaml:"redis"`
	Cache     ConfigCache      `yaml:"cache"`
	Services  ConfigServices   `yaml:"services"`
}

// DefaultConfig is used as is when no config file exists.
func DefaultConfig() Config {
	cfg := Config{
		Services: ConfigServices{
			Apps: ConfigServiceApps{Seed: true},
		},
	}

	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Transport.HTTP.Port <= 0 {
		c.Transport.HTTP.Port = 1234
	}

	if c.Tracing.JaegerEndpoint == "" {
		c.Tracing.JaegerEndpoint = "http://localhost:14268/api/traces"
	}

	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheInMemory
	}

	if c.Cache.MaxBytes <= 0 {
		c.Cache.MaxBytes = 32 * 1024 * 1024
	}

	if c.Services.Catalog.Delay <= 0 {
		c.Services.Catalog.Delay = 500 * time.Millisecond
	}

	if c.Services.Catalog.CacheExpiry <= 0 {
		c.Services.Catalog.CacheExpiry = 5 * time.Minute
	}

	if c.Services.Catalog.CachePrefix == "" {
		c.Services.Catalog.CachePrefix = "catalog"
	}

	if c.Services.Import.Workers <= 0 {
		c.Services.Import.Workers = 4
	}

	if c.Services.Import.MaxQueue <= 0 {
		c.Services.Import.MaxQueue = 100
	}
}

// DecodeConfig reads YAML config. Unknown keys are ignored and missing ones get defaults.
func DecodeConfig(r io.Reader) (cfg Config, err error) {
	cfg.Services.Apps.Seed = true

	dec := yaml.NewDecoder(r)
	dec.KnownFields(false)
	err = dec.Decode(&cfg)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("error decode config: %w", err)
		return
	}

	cfg.setDefaults()
	return cfg, nil
}

// LoadConfig need config file name. It only supports YAML file content.
func LoadConfig(configFileName string) (cfg Config, err error) {
	fileContent, err := os.ReadFile(configFileName)
	if err != nil {
		err = fmt.Errorf("error read file config %s: %w", configFileName, err)
		return
	}

	return DecodeConfig(bytes.NewReader(fileContent))
}
