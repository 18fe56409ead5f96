// Package secrets resolves the Azure OpenAI credential bundle from the best
// available source. It tries an Azure Key Vault first and falls back to
// process environment variables, tolerating partial unavailability of
// either: a vault that cannot be reached degrades to a pure environment
// bundle, and a single secret that cannot be fetched degrades only that
// field. Resolution never fails; completeness is checked by the consumer.
package secrets

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// Environment variables consulted during resolution.
const (
	EnvVaultURL   = "KEY_VAULT_URL"
	EnvAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvAPIVersion = "AZURE_OPENAI_API_VERSION"
	EnvDeployment = "AZURE_OPENAI_DEPLOYMENT"
)

// Key Vault secret names for the four bundle fields.
const (
	SecretAPIKey     = "AzureLLMKey"
	SecretEndpoint   = "AzureOpenAiBase"
	SecretAPIVersion = "AzureOpenAiVersion"
	SecretDeployment = "AzureOpenAiDeployment"
)

// DefaultAPIVersion is used when neither the vault nor the environment
// provides an API version.
const DefaultAPIVersion = "2024-02-01"

// DefaultVaultURL is the vault consulted when KEY_VAULT_URL is unset and no
// explicit override is given.
const DefaultVaultURL = "https://capmap-secrets.vault.azure.net/"

// Bundle is the credential/endpoint set needed to call the Azure OpenAI
// chat-completion API. APIVersion always carries a value; the other fields
// may be empty when no source provided them.
type Bundle struct {
	APIKey     string
	APIBase    string
	APIVersion string
	Deployment string
}

// Missing reports which required fields are absent. APIVersion is never
// required because it always defaults.
func (b Bundle) Missing() []string {
	var missing []string
	if b.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if b.APIBase == "" {
		missing = append(missing, "api_base")
	}
	if b.Deployment == "" {
		missing = append(missing, "deployment")
	}
	return missing
}

// Source is an open session against a secret store.
type Source interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SessionFunc opens an authenticated session against the given vault URL.
type SessionFunc func(ctx context.Context, vaultURL string) (Source, error)

// Resolver produces a Bundle once and memoizes it for its own lifetime.
// Credential rotation requires a fresh Resolver; an existing instance never
// re-reads its sources.
type Resolver struct {
	vaultURL    string
	vaultForced bool
	openSession SessionFunc
	lookupEnv   func(string) string

	once   sync.Once
	bundle Bundle
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithVaultURL overrides vault discovery. An empty URL disables the vault
// entirely and resolution is environment-only.
func WithVaultURL(url string) ResolverOption {
	return func(r *Resolver) {
		r.vaultURL = url
		r.vaultForced = true
	}
}

// WithSession replaces how vault sessions are opened. Used by tests and by
// callers that manage their own Azure credential chain.
func WithSession(fn SessionFunc) ResolverOption {
	return func(r *Resolver) { r.openSession = fn }
}

// WithEnviron replaces environment lookup. Used by tests.
func WithEnviron(fn func(string) string) ResolverOption {
	return func(r *Resolver) { r.lookupEnv = fn }
}

// NewResolver creates a Resolver that opens real Key Vault sessions and
// reads the real process environment unless options say otherwise.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		openSession: OpenKeyVault,
		lookupEnv:   os.Getenv,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the configuration bundle, computing it on first call and
// returning the memoized value afterwards. It never fails: every source
// error is logged and absorbed by falling back to the environment.
func (r *Resolver) Resolve(ctx context.Context) Bundle {
	r.once.Do(func() {
		r.bundle = r.resolve(ctx)
	})
	return r.bundle
}

func (r *Resolver) resolve(ctx context.Context) Bundle {
	vaultURL := r.vaultURL
	if !r.vaultForced {
		if v := r.lookupEnv(EnvVaultURL); v != "" {
			vaultURL = v
		} else {
			vaultURL = DefaultVaultURL
		}
	}

	if vaultURL == "" {
		slog.Info("no key vault configured, using environment for Azure OpenAI config")
		return r.envBundle()
	}

	src, err := r.openSession(ctx, vaultURL)
	if err != nil {
		slog.Warn("key vault unreachable, falling back to environment", "vault", vaultURL, "error", err)
		return r.envBundle()
	}

	b := Bundle{
		APIKey:     r.fetch(ctx, src, SecretAPIKey, EnvAPIKey),
		APIBase:    r.fetch(ctx, src, SecretEndpoint, EnvEndpoint),
		APIVersion: r.fetch(ctx, src, SecretAPIVersion, EnvAPIVersion),
		Deployment: r.fetch(ctx, src, SecretDeployment, EnvDeployment),
	}
	if b.APIVersion == "" {
		b.APIVersion = DefaultAPIVersion
	}

	if b.APIBase != "" {
		slog.Info("loaded Azure OpenAI config", "api_base", b.APIBase, "api_version", b.APIVersion, "deployment", b.Deployment)
	}
	return b
}

// fetch retrieves one secret. A failed fetch degrades to the corresponding
// environment variable without affecting the other fields.
func (r *Resolver) fetch(ctx context.Context, src Source, secretName, envName string) string {
	val, err := src.GetSecret(ctx, secretName)
	if err != nil {
		slog.Warn("secret not available, trying environment", "secret", secretName, "env", envName, "error", err)
		return r.lookupEnv(envName)
	}
	return val
}

func (r *Resolver) envBundle() Bundle {
	b := Bundle{
		APIKey:     r.lookupEnv(EnvAPIKey),
		APIBase:    r.lookupEnv(EnvEndpoint),
		APIVersion: r.lookupEnv(EnvAPIVersion),
		Deployment: r.lookupEnv(EnvDeployment),
	}
	if b.APIVersion == "" {
		b.APIVersion = DefaultAPIVersion
	}
	return b
}
