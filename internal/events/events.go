// Package events publishes adoption lifecycle events to Kafka as CloudEvents.
// Publishing is best-effort: failures are logged and never fail the
// originating operation.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicAdoptionEvents carries every event emitted by this service.
const TopicAdoptionEvents = "adoption.events"

// Event types.
const (
	AdoptionRequestCreated   = "adoption.request.created"
	AdoptionRequestAccepted  = "adoption.request.accepted"
	AdoptionRequestRejected  = "adoption.request.rejected"
	AdoptionRequestCancelled = "adoption.request.cancelled"
	AdvertisementPosted      = "adoption.advertisement.posted"
	AdvertisementRemoved     = "adoption.advertisement.removed"
)

// CloudEvent is the envelope written to Kafka.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps data in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// RequestEvent is the payload for adoption request lifecycle events.
type RequestEvent struct {
	RequestID       uuid.UUID `json:"request_id"`
	AdopterID       uuid.UUID `json:"adopter_id"`
	AdvertisementID uuid.UUID `json:"advertisement_id"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// AdvertisementEvent is the payload for advertisement lifecycle events.
type AdvertisementEvent struct {
	AdvertisementID uuid.UUID `json:"advertisement_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	PetID           uuid.UUID `json:"pet_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}
