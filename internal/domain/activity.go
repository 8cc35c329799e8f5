package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
	ActionPrint  ActivityAction = "print"
)

// Activity is a local record of a mutation confirmed by the remote API.
type Activity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Actor     string         `gorm:"size:140;index"`
	Action    ActivityAction `gorm:"type:varchar(20);index"`
	Entity    string         `gorm:"size:40;index"`
	EntityID  string         `gorm:"size:64"`
	Label     string         `gorm:"size:255"`
	CreatedAt time.Time      `gorm:"index"`
}
