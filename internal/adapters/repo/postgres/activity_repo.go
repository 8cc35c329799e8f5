package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type ActivityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) Record(ctx context.Context, a *domain.Activity) error {
	if a == nil {
		return errors.New("actividad nil")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

// Recent returns the newest entries first.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	var list []domain.Activity
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ForEntity lists what happened to one remote record.
func (r *ActivityRepo) ForEntity(ctx context.Context, entity, id string) ([]domain.Activity, error) {
	var list []domain.Activity
	if err := r.db.WithContext(ctx).Where("entity = ? AND entity_id = ?", entity, id).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Activity{})
}
