package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/bildy-admin/internal/domain"
)

// ActivityLog records confirmed mutations. A nil log or repo is a no-op and
// a failing repo never fails the mutation it describes.
type ActivityLog struct {
	Repo domain.ActivityRepo
	Now  func() time.Time
}

func (l *ActivityLog) Record(ctx context.Context, s domain.Session, action domain.ActivityAction, entity, id, label string) {
	if l == nil || l.Repo == nil {
		return
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	a := &domain.Activity{
		ID:        uuid.New(),
		Actor:     s.Email,
		Action:    action,
		Entity:    entity,
		EntityID:  id,
		Label:     label,
		CreatedAt: now(),
	}
	if err := l.Repo.Record(context.WithoutCancel(ctx), a); err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("activity record")
	}
}

func (l *ActivityLog) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if l == nil || l.Repo == nil {
		return []domain.Activity{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return l.Repo.Recent(ctx, limit)
}

// History lists the recorded mutations of one remote record, newest first.
func (l *ActivityLog) History(ctx context.Context, entity, id string) ([]domain.Activity, error) {
	if l == nil || l.Repo == nil || id == "" {
		return []domain.Activity{}, nil
	}
	return l.Repo.ForEntity(ctx, entity, id)
}

func (l *ActivityLog) Enabled() bool { return l != nil && l.Repo != nil }
