package secrets

import (
	"context"
	"fmt"
	"os"
)

// Provider resolves named shared secrets, such as the webhook verification
// key agreed with the payment gateway.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

type envProvider struct{}

func NewEnvProvider() Provider {
	return envProvider{}
}

// Get implements Provider.
func (envProvider) Get(_ context.Context, name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("secrets: %s is not set", name)
	}

	return value, nil
}
