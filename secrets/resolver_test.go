package secrets

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeVault serves secrets from a map; absent names return an error like a
// denied or missing Key Vault secret.
type fakeVault struct {
	secrets map[string]string
}

func (f *fakeVault) GetSecret(_ context.Context, name string) (string, error) {
	v, ok := f.secrets[name]
	if !ok {
		return "", fmt.Errorf("secret %s not found", name)
	}
	return v, nil
}

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func fullEnv() map[string]string {
	return map[string]string{
		EnvAPIKey:     "env-key",
		EnvEndpoint:   "https://env.example.com",
		EnvAPIVersion: "2023-05-15",
		EnvDeployment: "env-gpt-4",
	}
}

func TestResolve_VaultUnreachableFallsBackToEnvironment(t *testing.T) {
	r := NewResolver(
		WithVaultURL("https://vault.example.net/"),
		WithSession(func(context.Context, string) (Source, error) {
			return nil, errors.New("connection refused")
		}),
		WithEnviron(envFrom(fullEnv())),
	)

	b := r.Resolve(context.Background())

	want := Bundle{
		APIKey:     "env-key",
		APIBase:    "https://env.example.com",
		APIVersion: "2023-05-15",
		Deployment: "env-gpt-4",
	}
	if b != want {
		t.Fatalf("Resolve = %+v, want %+v", b, want)
	}
}

func TestResolve_SingleSecretFailureDegradesOnlyThatField(t *testing.T) {
	vault := &fakeVault{secrets: map[string]string{
		SecretAPIKey:     "vault-key",
		SecretEndpoint:   "https://vault.example.com",
		SecretAPIVersion: "2024-06-01",
		// SecretDeployment deliberately absent.
	}}
	r := NewResolver(
		WithVaultURL("https://vault.example.net/"),
		WithSession(func(context.Context, string) (Source, error) { return vault, nil }),
		WithEnviron(envFrom(fullEnv())),
	)

	b := r.Resolve(context.Background())

	want := Bundle{
		APIKey:     "vault-key",
		APIBase:    "https://vault.example.com",
		APIVersion: "2024-06-01",
		Deployment: "env-gpt-4",
	}
	if b != want {
		t.Fatalf("Resolve = %+v, want %+v", b, want)
	}
}

func TestResolve_NoVaultConfiguredUsesEnvironmentOnly(t *testing.T) {
	opened := 0
	r := NewResolver(
		WithVaultURL(""),
		WithSession(func(context.Context, string) (Source, error) {
			opened++
			return nil, errors.New("should not be called")
		}),
		WithEnviron(envFrom(fullEnv())),
	)

	b := r.Resolve(context.Background())
	if opened != 0 {
		t.Fatalf("vault session opened %d times in environment-only mode", opened)
	}
	if b.APIKey != "env-key" || b.Deployment != "env-gpt-4" {
		t.Fatalf("Resolve = %+v, want environment values", b)
	}
}

func TestResolve_APIVersionDefaultsWhenNoSourceProvidesIt(t *testing.T) {
	env := fullEnv()
	delete(env, EnvAPIVersion)

	t.Run("environment-only", func(t *testing.T) {
		r := NewResolver(WithVaultURL(""), WithEnviron(envFrom(env)))
		if b := r.Resolve(context.Background()); b.APIVersion != DefaultAPIVersion {
			t.Fatalf("APIVersion = %q, want %q", b.APIVersion, DefaultAPIVersion)
		}
	})

	t.Run("vault-without-version", func(t *testing.T) {
		vault := &fakeVault{secrets: map[string]string{SecretAPIKey: "k"}}
		r := NewResolver(
			WithVaultURL("https://vault.example.net/"),
			WithSession(func(context.Context, string) (Source, error) { return vault, nil }),
			WithEnviron(envFrom(env)),
		)
		if b := r.Resolve(context.Background()); b.APIVersion != DefaultAPIVersion {
			t.Fatalf("APIVersion = %q, want %q", b.APIVersion, DefaultAPIVersion)
		}
	})
}

func TestResolve_IncompleteBundleIsReturnedNotRejected(t *testing.T) {
	r := NewResolver(WithVaultURL(""), WithEnviron(envFrom(nil)))

	b := r.Resolve(context.Background())
	if b.APIVersion != DefaultAPIVersion {
		t.Fatalf("APIVersion = %q, want default", b.APIVersion)
	}
	missing := b.Missing()
	if len(missing) != 3 {
		t.Fatalf("Missing = %v, want api_key, api_base, deployment", missing)
	}
}

func TestResolve_MemoizesFirstResult(t *testing.T) {
	opened := 0
	vault := &fakeVault{secrets: map[string]string{SecretAPIKey: "vault-key"}}
	r := NewResolver(
		WithVaultURL("https://vault.example.net/"),
		WithSession(func(context.Context, string) (Source, error) {
			opened++
			return vault, nil
		}),
		WithEnviron(envFrom(fullEnv())),
	)

	first := r.Resolve(context.Background())
	vault.secrets[SecretAPIKey] = "rotated-key"
	second := r.Resolve(context.Background())

	if opened != 1 {
		t.Fatalf("vault session opened %d times, want 1", opened)
	}
	if first != second {
		t.Fatalf("second Resolve = %+v, want memoized %+v", second, first)
	}
	if second.APIKey != "vault-key" {
		t.Fatalf("APIKey = %q, rotation must not be visible to an existing resolver", second.APIKey)
	}
}

func TestResolve_VaultURLDiscoveredFromEnvironment(t *testing.T) {
	var seenURL string
	env := fullEnv()
	env[EnvVaultURL] = "https://from-env.vault.azure.net/"
	r := NewResolver(
		WithSession(func(_ context.Context, vaultURL string) (Source, error) {
			seenURL = vaultURL
			return nil, errors.New("unreachable")
		}),
		WithEnviron(envFrom(env)),
	)

	r.Resolve(context.Background())
	if seenURL != "https://from-env.vault.azure.net/" {
		t.Fatalf("session opened against %q, want KEY_VAULT_URL value", seenURL)
	}
}

func TestResolve_DefaultVaultURLWhenEnvUnset(t *testing.T) {
	var seenURL string
	r := NewResolver(
		WithSession(func(_ context.Context, vaultURL string) (Source, error) {
			seenURL = vaultURL
			return nil, errors.New("unreachable")
		}),
		WithEnviron(envFrom(fullEnv())),
	)

	r.Resolve(context.Background())
	if seenURL != DefaultVaultURL {
		t.Fatalf("session opened against %q, want %q", seenURL, DefaultVaultURL)
	}
}

func TestResolve_RealEnvironmentEndToEnd(t *testing.T) {
	t.Setenv(EnvVaultURL, "")
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvEndpoint, "https://x")
	t.Setenv(EnvAPIVersion, "")
	t.Setenv(EnvDeployment, "gpt-4")

	r := NewResolver(WithVaultURL(""))
	b := r.Resolve(context.Background())

	want := Bundle{APIKey: "k", APIBase: "https://x", APIVersion: "2024-02-01", Deployment: "gpt-4"}
	if b != want {
		t.Fatalf("Resolve = %+v, want %+v", b, want)
	}
	if len(b.Missing()) != 0 {
		t.Fatalf("Missing = %v, want none", b.Missing())
	}
}
