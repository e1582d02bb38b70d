package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

const signerTokenKey = "token"

type Vault struct {
	SignerPath string
	*api.Client
}

func New(token, address, signerPath string) (*Vault, error) {
	config := &api.Config{
		Address: address,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("new: error initializing vault: %w", err)
	}

	client.SetToken(token)

	status, err := client.Sys().SealStatus()
	if err != nil {
		return nil, fmt.Errorf("new: error getting seal status: %w", err)
	}
	if status.Sealed {
		return nil, fmt.Errorf("new: vault is sealed")
	}

	return &Vault{SignerPath: signerPath, Client: client}, nil
}

// SignerToken reads the wallet bridge bearer token. Both KV v1 and KV v2
// secret layouts are accepted.
func (v *Vault) SignerToken() (string, error) {
	secret, err := v.Logical().Read(v.SignerPath)
	if err != nil {
		return "", fmt.Errorf("signerToken: unable to read %s: %w", v.SignerPath, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("signerToken: no secret at %s", v.SignerPath)
	}
	return tokenFrom(secret.Data)
}

func tokenFrom(data map[string]interface{}) (string, error) {
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}
	token, ok := data[signerTokenKey].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("tokenFrom: secret has no %q field", signerTokenKey)
	}
	return token, nil
}
