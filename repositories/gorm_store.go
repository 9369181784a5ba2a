package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by db. Open db with TranslateError enabled so unique
// index violations surface as gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Manuscripts() ManuscriptRepository {
	return &manuscriptRepository{db: s.db}
}

func (s *gormStore) Assignments() AssignmentRepository {
	return &assignmentRepository{db: s.db}
}

func (s *gormStore) Recommendations() RecommendationRepository {
	return &recommendationRepository{db: s.db}
}

func (s *gormStore) History() HistoryRepository {
	return &historyRepository{db: s.db}
}

func (s *gormStore) References() ReferenceRepository {
	return &referenceRepository{db: s.db}
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) ReadTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
