package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryRecord is one audit row per attempted notification send.
type DeliveryRecord struct {
	ID        string
	UserID    int64
	LocalDate string // city-local civil date, YYYY-MM-DD
	Status    string
	Error     string
	SentAt    time.Time
}

func NewDeliveryRecord(userID int64, localDate, status, errMsg string, at time.Time) *DeliveryRecord {
	return &DeliveryRecord{
		ID:        ulid.Make().String(),
		UserID:    userID,
		LocalDate: localDate,
		Status:    status,
		Error:     errMsg,
		SentAt:    at,
	}
}
