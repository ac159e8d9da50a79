package config

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DefaultSeedURL is the public product transaction document used by /initialize-database.
const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type" json:"type"` // postgres, sqlite, mongodb
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	URI      string `yaml:"uri" json:"uri"` // mongodb connection string
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig WEB config
type WebConfig struct {
	Host        string   `yaml:"host" json:"host"`
	Port        int      `yaml:"port" json:"port"`
	Metrics     bool     `yaml:"metrics" json:"metrics"`
	CorsOrigins []string `yaml:"cors_origins" json:"cors_origins"`
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// SeedConfig describes where the initial transactions come from
type SeedConfig struct {
	URL         string `yaml:"url" json:"url"`
	TimeoutSecs int    `yaml:"timeout_secs" json:"timeout_secs"`
	Schedule    string `yaml:"schedule" json:"schedule"` // cron spec for periodic reloads, empty disables
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
	Seed     SeedConfig `yaml:"seed" json:"seed"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// DefaultAppConfig returns the built-in configuration used when no file is given
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "salesdash",
			Location: "Asia/Kolkata",
			Workdir:  "/var/salesdash",
			Debug:    false,
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        3000,
			Metrics:     true,
			CorsOrigins: []string{"*"},
		},
		Database: DBConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "product_transactions",
			User:     "postgres",
			Passwd:   "postgres",
			MaxConn:  50,
			IdleConn: 5,
			Debug:    false,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/salesdash/logs/salesdash.log",
		},
		Seed: SeedConfig{
			URL:         DefaultSeedURL,
			TimeoutSecs: 30,
		},
	}
}

// LoadConfig reads cfile when it exists, falls back to the defaults otherwise,
// then applies SALESDASH_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				return nil, err
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	setEnvValue("SALESDASH_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("SALESDASH_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("SALESDASH_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("SALESDASH_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("SALESDASH_WEB_PORT", &cfg.Web.Port)
	setEnvBoolValue("SALESDASH_WEB_METRICS", &cfg.Web.Metrics)
	if v := os.Getenv("SALESDASH_WEB_CORS_ORIGINS"); v != "" {
		cfg.Web.CorsOrigins = strings.Split(v, ",")
	}

	setEnvValue("SALESDASH_DB_TYPE", &cfg.Database.Type)
	setEnvValue("SALESDASH_DB_HOST", &cfg.Database.Host)
	setEnvValue("SALESDASH_DB_NAME", &cfg.Database.Name)
	setEnvValue("SALESDASH_DB_USER", &cfg.Database.User)
	setEnvValue("SALESDASH_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("SALESDASH_DB_URI", &cfg.Database.URI)
	setEnvIntValue("SALESDASH_DB_PORT", &cfg.Database.Port)
	setEnvIntValue("SALESDASH_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("SALESDASH_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("SALESDASH_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("SALESDASH_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("SALESDASH_LOGGER_FILENAME", &cfg.Logger.Filename)
	setEnvBoolValue("SALESDASH_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	setEnvValue("SALESDASH_SEED_URL", &cfg.Seed.URL)
	setEnvIntValue("SALESDASH_SEED_TIMEOUT", &cfg.Seed.TimeoutSecs)
	setEnvValue("SALESDASH_SEED_SCHEDULE", &cfg.Seed.Schedule)

	return cfg, nil
}

// InitDirs creates the working directories used for logs and local databases.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*val = n
		}
	}
}
