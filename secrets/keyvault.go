package secrets

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// OpenKeyVault opens a session against an Azure Key Vault using the ambient
// credential chain (environment, workload identity, managed identity, CLI).
func OpenKeyVault(_ context.Context, vaultURL string) (Source, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("acquiring azure credential: %w", err)
	}
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("opening key vault %s: %w", vaultURL, err)
	}
	return &keyVault{client: client}, nil
}

type keyVault struct {
	client *azsecrets.Client
}

func (k *keyVault) GetSecret(ctx context.Context, name string) (string, error) {
	resp, err := k.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("fetching secret %s: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %s has no value", name)
	}
	return *resp.Value, nil
}
