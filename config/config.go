package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	// Vault configuration for credential encryption at rest
	Vault *VaultConfig `json:"vault" yaml:"vault"`

	// Instagram Graph API application credentials
	Instagram *InstagramConfig `json:"instagram" yaml:"instagram"`

	// Telegram bot configuration for digest delivery
	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`

	// Cron configuration for externally triggered batch endpoints
	Cron *CronConfig `json:"cron" yaml:"cron"`

	// Sync configuration for the background workers
	Sync *SyncConfig `json:"sync" yaml:"sync"`

	// Frontend redirect targets for the OAuth round trip
	OAuthRedirect *OAuthRedirectConfig `json:"oauthRedirect" yaml:"oauthRedirect"`
}

// VaultConfig defines the credential vault key material. The key is a
// hex-encoded 32-byte AES key; a missing or malformed key fails startup.
type VaultConfig struct {
	KeyHex string `json:"keyHex" yaml:"keyHex"`
}

// InstagramConfig defines the Meta application used for the Instagram Graph flow.
type InstagramConfig struct {
	AppID       string `json:"appId" yaml:"appId"`
	AppSecret   string `json:"appSecret" yaml:"appSecret"`
	RedirectURI string `json:"redirectUri" yaml:"redirectUri"`
}

// TelegramConfig defines the bot used for daily digest delivery.
type TelegramConfig struct {
	BotToken string `json:"botToken" yaml:"botToken"`
}

// CronConfig guards the batch trigger endpoints with a shared secret.
type CronConfig struct {
	Secret string `json:"secret" yaml:"secret"`
}

// SyncConfig tunes the refresh and analytics sync workers.
type SyncConfig struct {
	// RefreshWindow selects credentials expiring within this window.
	RefreshWindow time.Duration `json:"refreshWindow" yaml:"refreshWindow"`

	// Concurrency bounds per-account fan-out inside one batch.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// ItemTimeout bounds one account's work inside a batch.
	ItemTimeout time.Duration `json:"itemTimeout" yaml:"itemTimeout"`

	// RequestTimeout bounds each outbound platform HTTP request.
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
}

// OAuthRedirectConfig holds the browser locations the callback redirects to.
type OAuthRedirectConfig struct {
	SuccessURL string `json:"successUrl" yaml:"successUrl"`
	ErrorURL   string `json:"errorUrl" yaml:"errorUrl"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

const (
	defaultRefreshWindow  = 7 * 24 * time.Hour
	defaultConcurrency    = 4
	defaultItemTimeout    = 30 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
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

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: VAULT_KEYHEX -> vault.keyHex (not vault.keyhex)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{}
	}
	if cfg.Sync.RefreshWindow <= 0 {
		cfg.Sync.RefreshWindow = defaultRefreshWindow
	}
	if cfg.Sync.Concurrency <= 0 {
		cfg.Sync.Concurrency = defaultConcurrency
	}
	if cfg.Sync.ItemTimeout <= 0 {
		cfg.Sync.ItemTimeout = defaultItemTimeout
	}
	if cfg.Sync.RequestTimeout <= 0 {
		cfg.Sync.RequestTimeout = defaultRequestTimeout
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
