// Package services contains application services for the fittrack client.
// This file defines the authentication service: the sign-up payload
// transformation, sign-in, and the equipment/injury catalogs offered at
// sign-up.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// ErrNoAccessToken is returned when the backend accepts a sign-up or sign-in
// but its response carries no access token.
var ErrNoAccessToken = errors.New("response contains no access token")

// AuthService defines the authentication operations used by the views.
//
// Contract:
//   - SignUp: turn raw form data into the backend payload and create the account.
//   - SignIn: exchange email and password for an access token.
//   - Catalog: list the equipment and injuries a profile can reference.
//
// Backend rejections surface as *client.RequestError; local parse failures as
// *models.ValidationError, in which case nothing is sent.
type AuthService interface {
	SignUp(ctx context.Context, form models.SignUpForm) (*models.TokenResponse, error)
	SignIn(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Catalog(ctx context.Context) (equipment, injuries []models.CatalogItem, err error)
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) SignUp(ctx context.Context, form models.SignUpForm) (*models.TokenResponse, error) {
	payload, err := models.NewSignUpPayload(form)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.SignUp(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("sign up: %w", ErrNoAccessToken)
	}
	return resp, nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	resp, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("sign in: %w", ErrNoAccessToken)
	}
	return resp, nil
}

func (a *authService) Catalog(ctx context.Context) ([]models.CatalogItem, []models.CatalogItem, error) {
	equipment, err := a.client.ListEquipment(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list equipment: %w", err)
	}
	injuries, err := a.client.ListInjuries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list injuries: %w", err)
	}
	return equipment, injuries, nil
}
