package service

import (
	"context"
	"time"

	apperrors "github.com/placementdrive/listing-server-go/internal/errors"
	"github.com/placementdrive/listing-server-go/internal/model"
	"github.com/placementdrive/listing-server-go/internal/repository"
	"github.com/placementdrive/listing-server-go/internal/token"
	"github.com/placementdrive/listing-server-go/internal/util"
)

// AuthService is the authentication gate: it decides login attempts and
// authorizes bearer tokens for protected operations.
type AuthService struct {
	adminRepo repository.AdminRepository
	issuer    *token.Issuer
	tokenTTL  time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, issuer *token.Issuer, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		issuer:    issuer,
		tokenTTL:  tokenTTL,
	}
}

// CreateAccount hashes the password and persists a new admin account.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string) (*model.AdminAccount, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	account, err := s.adminRepo.Create(ctx, model.CreateAdminParams{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Admin").WithCause(err)
		}
		return nil, apperrors.Database(err)
	}

	return account, nil
}

// Login verifies the credentials, issues a fresh token and persists it
// onto the account's single token slot, superseding any prior token.
// Unknown usernames and wrong passwords yield the same rejection so the
// response carries no enumeration signal.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.Database(err)
	}

	if account == nil || !util.CheckPassword(password, account.PasswordHash) {
		return "", apperrors.Unauthorized("Invalid username or password")
	}

	tok, err := s.issuer.Issue(account.Username, s.tokenTTL)
	if err != nil {
		return "", apperrors.Internal("Failed to issue token").WithCause(err)
	}

	expiry := time.Now().Add(s.tokenTTL)
	if err := s.adminRepo.UpdateSessionToken(ctx, account.Username, tok, expiry); err != nil {
		return "", apperrors.Database(err)
	}

	return tok, nil
}

// Authorize validates a bearer token for a protected operation. After
// cryptographic verification it cross-checks the presented token against
// the account's stored token slot, so a re-login invalidates the previous
// token immediately even though that token would still verify until its
// own expiry.
func (s *AuthService) Authorize(ctx context.Context, tokenStr string) (*token.Claims, error) {
	claims, err := s.issuer.Verify(tokenStr)
	if err != nil {
		return nil, apperrors.InvalidToken("Invalid or expired token")
	}

	account, err := s.adminRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if account == nil || account.SessionToken == nil || *account.SessionToken != tokenStr {
		return nil, apperrors.Unauthorized("Token superseded or unknown")
	}
	if account.TokenExpiry == nil || account.TokenExpiry.Before(time.Now()) {
		return nil, apperrors.Unauthorized("Token superseded or unknown")
	}

	return claims, nil
}
