package store

import (
	"context"
	"fmt"

	"github.com/fynd/reviewboard/internal/models"
	"gorm.io/gorm"
)

// DBStore keeps the collection in a relational database. Append order is
// the autoincrement id, so LoadAll returns records oldest first like the
// other backends.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) LoadAll(ctx context.Context) ([]models.Review, error) {
	var recs []models.Review
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return recs, nil
}

func (s *DBStore) Append(ctx context.Context, rec models.Review) error {
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *DBStore) Rewrite(ctx context.Context, recs []models.Review) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM reviews").Error; err != nil {
			return err
		}
		for i := range recs {
			recs[i].ID = 0
			if err := tx.Create(&recs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
