package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlannerDocument is the single persisted row holding the whole planner state
// as a JSON payload.
type PlannerDocument struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

// DocumentRepository stores and retrieves the singleton planner document.
type DocumentRepository struct {
	db  *gorm.DB
	key string
}

func NewDocumentRepository(db *gorm.DB, key string) *DocumentRepository {
	return &DocumentRepository{db: db, key: key}
}

// Load returns the stored payload, or (nil, nil) when no document has been
// written yet.
func (r *DocumentRepository) Load(ctx context.Context) ([]byte, error) {
	var doc PlannerDocument
	err := r.db.WithContext(ctx).Where("key = ?", r.key).First(&doc).Error
	switch {
	case err == nil:
		return doc.Payload, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("load document: %w", err)
	}
}

// Save upserts the payload under the fixed document key. Last write wins.
func (r *DocumentRepository) Save(ctx context.Context, payload []byte) error {
	doc := PlannerDocument{Key: r.key, Payload: payload, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
