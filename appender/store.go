package appender

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/postgres"
	"gorm.io/gorm"
)

const (
	// defaultBatchSize is the number of Records inserted per statement.
	defaultBatchSize = 100

	// defaultRecordLimit caps the Records a RecordQuery without a Limit returns.
	defaultRecordLimit = 100
)

// A Record is a message persisted by a Store.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Level     int       `gorm:"not null;index" json:"level"`
	LevelName string    `gorm:"not null" json:"levelName"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

// A RecordQuery selects persisted Records.
type RecordQuery struct {
	// Floor skips Records below it.
	Floor logger.Level

	// Limit caps the Records returned; zero means defaultRecordLimit.
	Limit int
}

// TableName overrides the table name GORM derives from Record.
func (Record) TableName() string { return "log_records" }

// StoreMigrations returns the migrations creating the table a Store writes to.
func StoreMigrations() []postgres.Migration {
	return []postgres.Migration{
		{
			Key:      "20221101_create_log_records",
			Executor: func(tx *gorm.DB) error { return tx.AutoMigrate(new(Record)) },
		},
	}
}

// A Store buffers messages as Records and inserts them into a database when flushed.
type Store struct {
	logger.Base

	db    *postgres.DB
	batch int
	now   func() time.Time

	mu      sync.Mutex
	pending []Record
}

// NewStore constructs a *Store inserting into db and attaches it to hub.
// A batch of zero or less inserts defaultBatchSize Records per statement.
func NewStore(hub *logger.Hub, db *postgres.DB, batch int) *Store {
	if batch <= 0 {
		batch = defaultBatchSize
	}

	s := &Store{db: db, batch: batch, now: time.Now}
	s.SetFormat("[%c] %m")
	s.Attach(hub, s)
	return s
}

// Append buffers text as a Record.
func (s *Store) Append(level logger.Level, text string) {
	r := Record{
		ID:        uuid.New(),
		Level:     level.Int(),
		LevelName: strings.TrimSpace(level.String()),
		Text:      text,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.pending = append(s.pending, r)
	s.mu.Unlock()
}

// Pending returns a copy of the Records waiting to be inserted.
func (s *Store) Pending() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	return append([]Record(nil), s.pending...)
}

// Flush inserts every pending Record.
// If inserting fails, the Records stay pending.
func (s *Store) Flush(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("%w: store: db", lumber.ErrMissingData)
	}

	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&pending, s.batch); err != nil {
		s.mu.Lock()
		s.pending = append(pending, s.pending...)
		s.mu.Unlock()
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

// Records returns the persisted Records matching q, newest first.
// Records still pending are not included.
func (s *Store) Records(ctx context.Context, q RecordQuery) ([]Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: store: db", lumber.ErrMissingData)
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultRecordLimit
	}

	records := make([]Record, 0)
	err := s.db.WithContext(ctx).
		Model(new(Record)).
		Where("level >= ?", q.Floor.Int()).
		Order("created_at DESC").
		Limit(limit).
		Find(&records)
	if errors.Is(err, lumber.ErrNotFound) {
		return records, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return records, nil
}

// Count returns the number of persisted Records at or above floor.
func (s *Store) Count(ctx context.Context, floor logger.Level) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("%w: store: db", lumber.ErrMissingData)
	}

	n, err := s.db.WithContext(ctx).Model(new(Record)).Where("level >= ?", floor.Int()).Count()
	if err != nil {
		return 0, fmt.Errorf("store: %w", err)
	}

	return n, nil
}

// Close unregisters the Store and flushes the Records still pending.
func (s *Store) Close(ctx context.Context) error {
	s.Unregister()
	return s.Flush(ctx)
}
