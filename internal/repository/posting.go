package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/placementdrive/listing-server-go/internal/database"
	"github.com/placementdrive/listing-server-go/internal/model"
)

type PostingRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Posting, error)
	// FindByIDForUpdate locks the row until the surrounding transaction
	// ends. Only meaningful on a repository bound via WithTx.
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Posting, error)
	FindAll(ctx context.Context) ([]model.Posting, error)
	Create(ctx context.Context, posting *model.Posting) (*model.Posting, error)
	Replace(ctx context.Context, posting *model.Posting) (*model.Posting, error)
	WithTx(tx *sqlx.Tx) PostingRepository
}

type postingRepo struct {
	db database.DBTX
}

func NewPostingRepository(db database.DBTX) PostingRepository {
	return &postingRepo{db: db}
}

func (r *postingRepo) WithTx(tx *sqlx.Tx) PostingRepository {
	return &postingRepo{db: tx}
}

func (r *postingRepo) FindByID(ctx context.Context, id int64) (*model.Posting, error) {
	var posting model.Posting
	err := r.db.GetContext(ctx, &posting, `
		SELECT * FROM postings
		WHERE id = $1
	`, id)
	return HandleNotFound(&posting, err)
}

func (r *postingRepo) FindByIDForUpdate(ctx context.Context, id int64) (*model.Posting, error) {
	var posting model.Posting
	err := r.db.GetContext(ctx, &posting, `
		SELECT * FROM postings
		WHERE id = $1
		FOR UPDATE
	`, id)
	return HandleNotFound(&posting, err)
}

func (r *postingRepo) FindAll(ctx context.Context) ([]model.Posting, error) {
	postings := []model.Posting{}
	err := r.db.SelectContext(ctx, &postings, `
		SELECT * FROM postings
		ORDER BY posted_date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *postingRepo) Create(ctx context.Context, posting *model.Posting) (*model.Posting, error) {
	var stored model.Posting
	err := r.db.GetContext(ctx, &stored, `
		INSERT INTO postings
			(company, designation, description, image_path, application_link,
			 salary, batch, posted_date, inactive_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`,
		posting.Company, posting.Designation, posting.Description,
		posting.ImagePath, posting.ApplicationLink, posting.Salary,
		posting.Batch, posting.PostedDate, posting.InactiveDate,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *postingRepo) Replace(ctx context.Context, posting *model.Posting) (*model.Posting, error) {
	var stored model.Posting
	err := r.db.GetContext(ctx, &stored, `
		UPDATE postings
		SET company = $2, designation = $3, description = $4, image_path = $5,
			application_link = $6, salary = $7, batch = $8, posted_date = $9,
			inactive_date = $10
		WHERE id = $1
		RETURNING *
	`,
		posting.ID, posting.Company, posting.Designation, posting.Description,
		posting.ImagePath, posting.ApplicationLink, posting.Salary,
		posting.Batch, posting.PostedDate, posting.InactiveDate,
	)
	return HandleNotFound(&stored, err)
}
