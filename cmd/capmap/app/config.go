package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/capmap/internal/sources/s3csv"
	"github.com/agentstation/capmap/internal/storage"
	"github.com/agentstation/capmap/pkg/constants"
)

// Source names accepted by the source key.
const (
	SourceBootstrap = "bootstrap"
	SourceCSV       = "csv"
)

// Config holds the application configuration loaded from config files,
// .env files, CAPMAP_ environment variables and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	ConfigFile string

	// Catalog loading
	Source         string
	DataDir        string
	DataURL        string
	DataAuth       string
	DataToken      string
	S3             s3csv.Config
	ReloadInterval time.Duration

	// Persistence
	Store storage.Config

	// Initial selection
	Domain string
	Vendor string

	// Server
	Host           string
	Port           int
	CacheTTL       time.Duration
	APIKey         string
	ReadOnlyPublic bool
	CORSOrigins    []string
	Watch          bool

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// External reports whether loads should read the external row source.
func (c *Config) External() bool {
	return strings.EqualFold(c.Source, SourceCSV)
}

// newViper creates the viper instance with defaults and environment
// binding. Precedence, highest first: flags, CAPMAP_ environment
// (including .env and .env.local), config file, defaults.
func newViper() *viper.Viper {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("source", SourceBootstrap)
	v.SetDefault("data_dir", "data")
	v.SetDefault("data_auth", "bearer")
	v.SetDefault("store_driver", string(storage.DriverSQLite))
	v.SetDefault("store_path", constants.DefaultStorePath)
	v.SetDefault("domain", "ALL")
	v.SetDefault("host", "localhost")
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("read_only_public", true)
	return v
}

// bindFlags binds flags to keys; dashes in flag names become underscores.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

// readConfigFile reads the explicit file, or .capmap.yaml from the home
// or working directory when it exists.
func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		return v.ReadInConfig()
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("." + constants.AppName)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// configFromViper builds a Config from the resolved keys.
func configFromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Source:    v.GetString("source"),
		DataDir:   v.GetString("data_dir"),
		DataURL:   v.GetString("data_url"),
		DataAuth:  v.GetString("data_auth"),
		DataToken: v.GetString("data_token"),
		S3: s3csv.Config{
			Region:    v.GetString("s3_region"),
			Bucket:    v.GetString("s3_bucket"),
			Prefix:    v.GetString("s3_prefix"),
			Endpoint:  v.GetString("s3_endpoint"),
			PathStyle: v.GetBool("s3_path_style"),
		},
		ReloadInterval: v.GetDuration("reload_interval"),

		Store: storage.Config{
			Driver: storage.Driver(v.GetString("store_driver")),
			Path:   v.GetString("store_path"),
			DSN:    v.GetString("store_dsn"),
		},

		Domain: v.GetString("domain"),
		Vendor: v.GetString("vendor"),

		Host:           v.GetString("host"),
		Port:           v.GetInt("port"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		APIKey:         v.GetString("api_key"),
		ReadOnlyPublic: v.GetBool("read_only_public"),
		CORSOrigins:    v.GetStringSlice("cors_origins"),
		Watch:          v.GetBool("watch"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), os.Getenv("LOG_FORMAT"), "auto"),
		LogOutput: firstNonEmpty(v.GetString("log_output"), os.Getenv("LOG_OUTPUT"), "stderr"),
	}
}

// LoadConfig resolves configuration without command-line flags.
func LoadConfig() (*Config, error) {
	v := newViper()
	if err := readConfigFile(v, v.GetString("config")); err != nil {
		return nil, err
	}
	return configFromViper(v), nil
}

// loadEnvFiles loads .env.local and .env. godotenv never overrides a
// variable that is already set, so the real environment wins and
// .env.local wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
