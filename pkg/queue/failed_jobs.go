package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/pkg/logger"
)

// FailedJobRecord is what lands in warungsaji_failed_jobs when a job
// exhausts its retries. The payload is the job's JSON, so an operator
// can inspect or replay it by hand.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "warungsaji_failed_jobs" }

var failedJobDB *gorm.DB

// UseDB turns on database persistence for failed jobs. The server boot
// calls it right after database.Connect(); without it failures only
// live in memory.
func UseDB(db *gorm.DB) {
	failedJobDB = db
	db.AutoMigrate(&FailedJobRecord{})
}

func (m *manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedJobDB == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	rec := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	if err := failedJobDB.Create(&rec).Error; err != nil {
		// The in-memory copy above still has it.
		logger.Error("queue: persist failed job", "type", typeName, "error", err)
	}
}
