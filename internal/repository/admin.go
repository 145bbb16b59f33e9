package repository

import (
	"context"
	"time"

	"github.com/placementdrive/listing-server-go/internal/database"
	"github.com/placementdrive/listing-server-go/internal/model"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error)
	Create(ctx context.Context, params model.CreateAdminParams) (*model.AdminAccount, error)
	// UpdateSessionToken overwrites the account's single token slot.
	// Token and expiry are always written together.
	UpdateSessionToken(ctx context.Context, username, token string, expiry time.Time) error
	ClearExpiredTokens(ctx context.Context) (int64, error)
}

type adminRepo struct {
	db database.DBTX
}

func NewAdminRepository(db database.DBTX) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		SELECT * FROM admin_accounts
		WHERE username = $1
	`, username)
	return HandleNotFound(&account, err)
}

func (r *adminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		INSERT INTO admin_accounts (username, password_hash)
		VALUES ($1, $2)
		RETURNING *
	`, params.Username, params.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *adminRepo) UpdateSessionToken(ctx context.Context, username, token string, expiry time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_accounts
		SET session_token = $2, token_expiry = $3
		WHERE username = $1
	`, username, token, expiry)
	return err
}

func (r *adminRepo) ClearExpiredTokens(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admin_accounts
		SET session_token = NULL, token_expiry = NULL
		WHERE token_expiry IS NOT NULL AND token_expiry < NOW()
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
