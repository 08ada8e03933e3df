package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath    = "."
	defaultEnvName = "config"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	// Storage locates the on-disk document collections and the operational
	// log directory the rotation worker manages.
	Storage struct {
		DataDir string `json:"dataDir" yaml:"dataDir"`
		LogDir  string `json:"logDir" yaml:"logDir"`
	} `json:"storage" yaml:"storage"`

	Auth struct {
		// TokenTTL is the lifetime granted to a token on issue and on renewal.
		TokenTTL   time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
		BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	} `json:"auth" yaml:"auth"`

	Cart struct {
		// TTL is the expiry assigned to a cart at creation. Carts mirror the
		// session lifetime so the garbage collector can sweep abandoned ones.
		TTL time.Duration `json:"ttl" yaml:"ttl"`
	} `json:"cart" yaml:"cart"`

	Maintenance struct {
		GCInterval          time.Duration `json:"gcInterval" yaml:"gcInterval"`
		LogRotationInterval time.Duration `json:"logRotationInterval" yaml:"logRotationInterval"`
	} `json:"maintenance" yaml:"maintenance"`

	Stripe struct {
		BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
		SecretKey string `json:"secretKey" yaml:"secretKey"`
	} `json:"stripe" yaml:"stripe"`

	Mailgun struct {
		BaseURL string `json:"baseUrl" yaml:"baseUrl"`
		APIKey  string `json:"apiKey" yaml:"apiKey"`
		Domain  string `json:"domain" yaml:"domain"`
	} `json:"mailgun" yaml:"mailgun"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// New loads the configuration for the environment named by APP_ENV
// (defaulting to "config", i.e. config.yaml in the working directory).
func New() (*Config, error) {
	currEnv := os.Getenv("APP_ENV")
	if currEnv == "" {
		currEnv = defaultEnvName
	}

	cfg, err := LoadWithEnv[Config](currEnv)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment
// variables (ENV_VAR_NAME -> env.var.name) on top.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for the config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	// Overlay environment variables: STRIPE_SECRETKEY -> stripe.secretkey.
	// Matching against struct fields below is case-insensitive.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ToLower(strings.ReplaceAll(k, "_", ".")), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 4000
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = ".data"
	}
	if cfg.Storage.LogDir == "" {
		cfg.Storage.LogDir = ".logs"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = time.Hour
	}
	if cfg.Cart.TTL == 0 {
		cfg.Cart.TTL = cfg.Auth.TokenTTL
	}
	if cfg.Maintenance.GCInterval == 0 {
		cfg.Maintenance.GCInterval = time.Hour
	}
	if cfg.Maintenance.LogRotationInterval == 0 {
		cfg.Maintenance.LogRotationInterval = 24 * time.Hour
	}
}
