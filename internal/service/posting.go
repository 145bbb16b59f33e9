package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/placementdrive/listing-server-go/internal/database"
	apperrors "github.com/placementdrive/listing-server-go/internal/errors"
	"github.com/placementdrive/listing-server-go/internal/model"
	"github.com/placementdrive/listing-server-go/internal/repository"
)

// DefaultInactiveWindowDays is the visibility window applied when a
// create or update omits the inactive date.
const DefaultInactiveWindowDays = 10

// TxRunner runs a function inside a database transaction. *database.DB
// satisfies it; tests substitute a pass-through.
type TxRunner interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

type PostingService struct {
	tx          TxRunner
	postingRepo repository.PostingRepository
}

func NewPostingService(tx TxRunner, postingRepo repository.PostingRepository) *PostingService {
	return &PostingService{
		tx:          tx,
		postingRepo: postingRepo,
	}
}

// buildPosting applies the defaulting rules shared by create and update:
// postedDate is today, an omitted salary becomes the "NA" sentinel and an
// omitted inactive date becomes today + the default window.
func buildPosting(params model.PostingParams, today time.Time) *model.Posting {
	day := model.DateOnly(today)

	salary := params.Salary
	if salary == "" {
		salary = model.SalaryNotAvailable
	}

	inactive := params.InactiveDate
	if inactive == nil {
		d := day.AddDate(0, 0, DefaultInactiveWindowDays)
		inactive = &d
	} else {
		d := model.DateOnly(*inactive)
		inactive = &d
	}

	return &model.Posting{
		Company:         params.Company,
		Designation:     params.Designation,
		Description:     params.Description,
		ImagePath:       params.ImagePath,
		ApplicationLink: params.ApplicationLink,
		Salary:          salary,
		Batch:           params.Batch,
		PostedDate:      day,
		InactiveDate:    inactive,
	}
}

// Create persists a new posting and returns the stored record, including
// the computed defaults.
func (s *PostingService) Create(ctx context.Context, params model.PostingParams, today time.Time) (*model.Posting, error) {
	posting := buildPosting(params, today)

	stored, err := s.postingRepo.Create(ctx, posting)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return stored, nil
}

// Update replaces every descriptive field and the visibility window of an
// existing posting, applying the same defaulting rules as Create. The
// fetch-replace sequence runs in a transaction with the row locked so
// concurrent updates to the same posting cannot lose writes.
func (s *PostingService) Update(ctx context.Context, id int64, params model.PostingParams, today time.Time) (*model.Posting, error) {
	var updated *model.Posting

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := s.postingRepo.WithTx(tx)

		existing, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return apperrors.Database(err)
		}
		if existing == nil {
			return apperrors.NotFound("Posting")
		}

		posting := buildPosting(params, today)
		posting.ID = id

		stored, err := repo.Replace(ctx, posting)
		if err != nil {
			return apperrors.Database(err)
		}
		if stored == nil {
			return apperrors.NotFound("Posting")
		}

		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListActive returns the public projection of every posting still active
// on the given day. The verdict is computed fresh per call, never cached.
func (s *PostingService) ListActive(ctx context.Context, today time.Time) ([]model.PublicPosting, error) {
	postings, err := s.postingRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	active := []model.PublicPosting{}
	for i := range postings {
		if postings[i].ActiveOn(today) {
			active = append(active, postings[i].Public())
		}
	}
	return active, nil
}
