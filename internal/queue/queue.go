// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"

	"netlink-server/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// OFFLINE SYNC QUEUE
// ═══════════════════════════════════════════════════════════

// Submitter replays a queued report against the server. Satisfied by
// *client.Client.
type Submitter interface {
	Submit(ctx context.Context, report *models.SubmitRequest) (uint, error)
}

// Queue is the agent's durable holding area for reports created while
// the server was unreachable. Entries leave the queue only on confirmed
// persistence; failed replays wait for the next drain trigger.
type Queue struct {
	db       *gorm.DB
	client   Submitter
	draining int32
}

// Open opens (or creates) the local queue database at path.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open queue db: %w", err)
	}
	if err := db.AutoMigrate(&models.QueuedReport{}); err != nil {
		return nil, fmt.Errorf("migrate queue db: %w", err)
	}
	return db, nil
}

func New(db *gorm.DB, client Submitter) *Queue {
	return &Queue{db: db, client: client}
}

// Enqueue stores a normalized submission with a locally generated id
// and timestamp.
func (q *Queue) Enqueue(report *models.SubmitRequest) (*models.QueuedReport, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode queued report: %w", err)
	}

	entry := &models.QueuedReport{Payload: string(payload)}
	if err := q.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("enqueue report: %w", err)
	}

	pending, _ := q.Pending()
	log.Printf("[Queue] Report queued locally id=%s (%d pending)", entry.LocalID, pending)
	return entry, nil
}

// Pending returns the number of queued reports.
func (q *Queue) Pending() (int64, error) {
	var count int64
	if err := q.db.Model(&models.QueuedReport{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	return count, nil
}

// DrainSummary is the single user-visible result of one drain pass.
type DrainSummary struct {
	Synced int `json:"synced"`
	Total  int `json:"total"`
}

// Drain replays every currently queued report in enqueue order. Entries
// that succeed are removed; entries that fail stay queued for the next
// trigger. At most one drain runs at a time: a drain started while
// another is in flight is a no-op, and reports enqueued mid-drain wait
// for the next trigger. A drain over an empty queue stays silent.
func (q *Queue) Drain(ctx context.Context) (DrainSummary, error) {
	if !atomic.CompareAndSwapInt32(&q.draining, 0, 1) {
		log.Println("[Queue] Drain already in progress, skipping")
		return DrainSummary{}, nil
	}
	defer atomic.StoreInt32(&q.draining, 0)

	var entries []models.QueuedReport
	if err := q.db.Order("queued_at ASC, id ASC").Find(&entries).Error; err != nil {
		return DrainSummary{}, fmt.Errorf("load queue: %w", err)
	}
	if len(entries) == 0 {
		return DrainSummary{}, nil
	}

	summary := DrainSummary{Total: len(entries)}
	log.Printf("[Queue] Draining %d queued reports...", summary.Total)

	for i := range entries {
		entry := &entries[i]

		select {
		case <-ctx.Done():
			log.Printf("[Queue] Drain cancelled after %d/%d", summary.Synced, summary.Total)
			return summary, ctx.Err()
		default:
		}

		var report models.SubmitRequest
		if err := json.Unmarshal([]byte(entry.Payload), &report); err != nil {
			// Unreadable payloads can never replay; record and keep.
			q.markFailed(entry, fmt.Sprintf("corrupt payload: %v", err))
			continue
		}

		reportID, err := q.client.Submit(ctx, &report)
		if err != nil {
			q.markFailed(entry, err.Error())
			continue
		}

		if err := q.db.Delete(entry).Error; err != nil {
			log.Printf("[Queue] Synced report %s (#%d) but failed to dequeue: %v", entry.LocalID, reportID, err)
			continue
		}
		summary.Synced++
		log.Printf("[Queue] Synced report %s as #%d", entry.LocalID, reportID)
	}

	log.Printf("[Queue] Drain complete: %d/%d synced", summary.Synced, summary.Total)
	return summary, nil
}

func (q *Queue) markFailed(entry *models.QueuedReport, reason string) {
	q.db.Model(entry).Updates(map[string]interface{}{
		"attempt":    entry.Attempt + 1,
		"last_error": reason,
	})
	log.Printf("[Queue] Report %s stays queued (attempt %d): %s", entry.LocalID, entry.Attempt+1, reason)
}
