package connectors

import (
	"fmt"
	"os"
	"strings"
	"time"

	"trading212/src/security"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	logger "github.com/sirupsen/logrus"
)

const (
	DefaultDomain     = "trading212.com"
	DefaultAPIVersion = "v0"
	DefaultTimeout    = 15 * time.Second
)

// AccountMode selects the live or the demo (paper trading) environment.
type AccountMode string

const (
	ModeLive AccountMode = "live"
	ModeDemo AccountMode = "demo"
)

type Config struct {
	AccountType      string        `envconfig:"ACCOUNT_TYPE" default:"live"`
	APIKey           string        `envconfig:"T212_API_KEY"`
	DemoAPIKey       string        `envconfig:"T212_DEMO_API_KEY"`
	SealedAPIKey     string        `envconfig:"T212_API_KEY_SEALED"`
	SealedDemoAPIKey string        `envconfig:"T212_DEMO_API_KEY_SEALED"`
	APIVersion       string        `envconfig:"T212_API_VERSION" default:"v0"`
	Domain           string        `envconfig:"T212_DOMAIN" default:"trading212.com"`
	BaseURL          string        `envconfig:"T212_BASE_URL"`
	Timeout          time.Duration `envconfig:"T212_TIMEOUT" default:"15s"`
}

func GetConfig() Config {
	LoadEnvFiles()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// LoadEnvFiles loads .env/.secret and .env/.shared outside production.
// godotenv never overrides a variable that is already set, so the real
// environment wins over .secret, which wins over .shared.
func LoadEnvFiles() {
	if strings.EqualFold(os.Getenv("IN_PRODUCTION"), "true") {
		return
	}
	for _, path := range []string{".env/.secret", ".env/.shared"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.WithError(err).WithField("path", path).Warn("Failed to load env file")
		}
	}
}

// Mode parses AccountType.
func (c Config) Mode() (AccountMode, error) {
	switch AccountMode(strings.ToLower(strings.TrimSpace(c.AccountType))) {
	case ModeLive, "":
		return ModeLive, nil
	case ModeDemo:
		return ModeDemo, nil
	default:
		return "", &ConfigurationError{Field: "ACCOUNT_TYPE", Reason: fmt.Sprintf("unknown account type %q", c.AccountType)}
	}
}

// ResolveAPIKey picks the key for the configured mode. A plain key wins over
// the sealed one. Each mode only reads its own variables, so a demo run never
// picks up the live key.
func (c Config) ResolveAPIKey() (string, error) {
	mode, err := c.Mode()
	if err != nil {
		return "", err
	}

	key, sealed := c.APIKey, c.SealedAPIKey
	field, sealedField := "T212_API_KEY", "T212_API_KEY_SEALED"
	if mode == ModeDemo {
		key, sealed = c.DemoAPIKey, c.SealedDemoAPIKey
		field, sealedField = "T212_DEMO_API_KEY", "T212_DEMO_API_KEY_SEALED"
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, nil
	}

	if strings.TrimSpace(sealed) != "" {
		plain, err := security.DecryptString(sealed)
		if err != nil {
			return "", &ConfigurationError{Field: sealedField, Reason: "cannot open sealed key", Err: err}
		}
		return plain, nil
	}
	return "", &ConfigurationError{Field: field, Reason: "API key is required"}
}

// ResolveBaseURL builds https://{mode}.{domain}/api/{version} unless an
// explicit BaseURL is configured.
func (c Config) ResolveBaseURL() (string, error) {
	if u := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"); u != "" {
		return u, nil
	}
	mode, err := c.Mode()
	if err != nil {
		return "", err
	}
	domain := c.Domain
	if strings.TrimSpace(domain) == "" {
		domain = DefaultDomain
	}
	version := c.APIVersion
	if strings.TrimSpace(version) == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf("https://%s.%s/api/%s", mode, domain, version), nil
}
