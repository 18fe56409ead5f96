package genai

import (
	"fmt"
	"strings"

	"github.com/capmap-hq/capmap/secrets"
)

// ConfigError reports configuration fields still missing after the full
// secret-store and environment fallback chain. It names each missing field
// and tells the operator where to set it.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"missing required Azure OpenAI config: %s. Provide these via environment variables (%s, %s, %s) or store them in Azure Key Vault (%s, %s, %s) and set %s",
		strings.Join(e.Missing, ", "),
		secrets.EnvAPIKey, secrets.EnvEndpoint, secrets.EnvDeployment,
		secrets.SecretAPIKey, secrets.SecretEndpoint, secrets.SecretDeployment,
		secrets.EnvVaultURL,
	)
}

// GenerationError wraps a failed chat-completion call. Generation has no
// partial-success state: any API failure surfaces as this error and is
// never retried here.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "content generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
