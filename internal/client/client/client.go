package client

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Client is the transport contract of the fittrack backend's auth API.
type Client interface {
	SignUp(ctx context.Context, payload models.SignUpPayload) (*models.TokenResponse, error)
	SignIn(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
	ListEquipment(ctx context.Context) ([]models.CatalogItem, error)
	ListInjuries(ctx context.Context) ([]models.CatalogItem, error)
	Ping(ctx context.Context) error
	Close() error
}

// TokenSource yields the credential token to attach to authenticated
// requests. An empty token means "send no Authorization header".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
