package services

import (
	"encoding/json"
	"fmt"

	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// emitEvent appends one event row in the caller's transaction. Events are
// append-only; nothing in this service updates or deletes them.
func emitEvent(tx *gorm.DB, kind string, payload map[string]interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	event := models.Event{Kind: kind, Payload: datatypes.JSON(b)}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// EventService exposes the event stream to external indexers.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// List returns events in ascending ID order, starting after the given
// cursor.
func (s *EventService) List(afterID uint64, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []models.Event
	err := s.db.Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
