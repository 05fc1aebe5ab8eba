package spauth

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/auth/addin"
	"github.com/koltyakov/gosip/auth/azurecert"
	"github.com/zalando/go-keyring"
)

// Supported auth strategies.
const (
	StrategyAzureCert = "azurecert"
	StrategyAddin     = "addin"
)

type Config struct {
	Strategy     string
	SiteURL      string
	TenantID     string
	ClientID     string
	ClientSecret string
	CertPath     string
	CertPassword string

	// CertPasswordKeyring is "service:user"; when set the certificate password
	// is read from the OS keyring instead of SP_CERT_PASSWORD.
	CertPasswordKeyring string
}

func FromEnv() (Config, error) {
	// Environment should already be loaded by main.go
	cfg := Config{
		Strategy:            strings.ToLower(os.Getenv("SP_AUTH_STRATEGY")),
		SiteURL:             os.Getenv("SP_SITE_URL"),
		TenantID:            os.Getenv("SP_TENANT_ID"),
		ClientID:            os.Getenv("SP_CLIENT_ID"),
		ClientSecret:        os.Getenv("SP_CLIENT_SECRET"),
		CertPath:            os.Getenv("SP_CERT_PATH"),
		CertPassword:        os.Getenv("SP_CERT_PASSWORD"),
		CertPasswordKeyring: os.Getenv("SP_CERT_PASSWORD_KEYRING"),
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyAzureCert
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid SharePoint auth configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields required by the selected strategy.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Strategy, validation.Required, validation.In(StrategyAzureCert, StrategyAddin)),
		validation.Field(&c.SiteURL, validation.Required, is.URL),
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.TenantID, validation.When(c.Strategy == StrategyAzureCert, validation.Required)),
		validation.Field(&c.CertPath, validation.When(c.Strategy == StrategyAzureCert, validation.Required)),
		validation.Field(&c.ClientSecret, validation.When(c.Strategy == StrategyAddin, validation.Required)),
		validation.Field(&c.CertPasswordKeyring, validation.By(func(any) error {
			if c.CertPasswordKeyring == "" {
				return nil
			}
			_, _, err := splitKeyringRef(c.CertPasswordKeyring)
			return err
		})),
	)
}

func NewClient(cfg Config) (*gosip.SPClient, error) {
	switch cfg.Strategy {
	case StrategyAddin:
		ac := &addin.AuthCnfg{
			SiteURL:      cfg.SiteURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		}
		return &gosip.SPClient{AuthCnfg: ac}, nil
	case StrategyAzureCert, "":
		password, err := certPassword(cfg)
		if err != nil {
			return nil, err
		}
		ac := &azurecert.AuthCnfg{
			SiteURL:  cfg.SiteURL,
			TenantID: cfg.TenantID,
			ClientID: cfg.ClientID,
			CertPath: cfg.CertPath,
			CertPass: password,
		}
		return &gosip.SPClient{AuthCnfg: ac}, nil
	default:
		return nil, fmt.Errorf("unsupported auth strategy %q", cfg.Strategy)
	}
}

func certPassword(cfg Config) (string, error) {
	if cfg.CertPasswordKeyring == "" {
		return cfg.CertPassword, nil
	}
	service, user, err := splitKeyringRef(cfg.CertPasswordKeyring)
	if err != nil {
		return "", err
	}
	password, err := keyring.Get(service, user)
	if err != nil {
		return "", fmt.Errorf("read certificate password from keyring %s: %w", cfg.CertPasswordKeyring, err)
	}
	return password, nil
}

func splitKeyringRef(ref string) (string, string, error) {
	service, user, ok := strings.Cut(ref, ":")
	if !ok || service == "" || user == "" {
		return "", "", fmt.Errorf("keyring reference must be service:user, got %q", ref)
	}
	return service, user, nil
}
