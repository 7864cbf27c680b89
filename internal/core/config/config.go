package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

// Store selects the kv medium backing the document.
// Driver is one of: memory, redis, postgres, mysql.
type Store struct {
	Driver string
	Redis  Redis `mapstructure:"redis"`
	DB     DB    `mapstructure:"db"`
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	Store Store
}

// Load reads the YAML config at path (CONFIG_PATH or the local default)
// with APP_-prefixed env overrides. Every key has a default so the binary
// runs with no config file at all, on the memory driver.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			log.Fatalf("read config: %v", err)
		}
		// no config file: defaults + env only
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cleanspot")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.path", "logs/app.log")
	v.SetDefault("log.file.maxsizemb", 64)
	v.SetDefault("log.file.maxbackups", 5)
	v.SetDefault("log.file.maxagedays", 14)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "dev-only-secret")
	v.SetDefault("jwt.issuer", "cleanspot")
	v.SetDefault("jwt.accesstokenttlmin", 720)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.redis.addr", "127.0.0.1:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.db.dsn", "")
	v.SetDefault("store.db.maxopenconns", 10)
	v.SetDefault("store.db.maxidleconns", 5)
	v.SetDefault("store.db.connmaxlifetimemin", 30)
	v.SetDefault("store.db.loglevel", "warn")
}
