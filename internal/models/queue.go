// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueuedReport is a report held in the agent's local durable store while
// the server is unreachable. It is removed only on confirmed persistence;
// a failed replay leaves it queued for the next drain.
type QueuedReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LocalID   string    `gorm:"uniqueIndex;size:36" json:"local_id"`
	Payload   string    `gorm:"type:text" json:"payload"` // JSON-encoded SubmitRequest
	QueuedAt  time.Time `gorm:"index" json:"queued_at"`
	Attempt   int       `gorm:"default:0" json:"attempt"`
	LastError string    `gorm:"type:text" json:"last_error,omitempty"`
}

func (QueuedReport) TableName() string {
	return "queued_reports"
}

// BeforeCreate fills the locally generated identifier and timestamp.
func (q *QueuedReport) BeforeCreate(tx *gorm.DB) error {
	if q.LocalID == "" {
		q.LocalID = uuid.New().String()
	}
	if q.QueuedAt.IsZero() {
		q.QueuedAt = time.Now().UTC()
	}
	return nil
}
