package note

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a note does not exist or is not owned
// by the requesting user
var ErrNotFound = errors.New("note not found")

// Store interface defines owner-scoped note persistence. Every read
// and delete is bound to the owner so one user can never touch
// another's rows
type Store interface {
	Insert(ctx context.Context, note *Note) error
	ListByOwner(ctx context.Context, userID string) ([]Summary, error)
	GetByOwner(ctx context.Context, id uuid.UUID, userID string) (*Note, error)
	DeleteByOwner(ctx context.Context, id uuid.UUID, userID string) error
}

// MySqlStore handles note persistence using GORM
type MySqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new note store with GORM connection
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate tables
	if err := db.AutoMigrate(&Note{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &MySqlStore{db: db}, nil
}

// Insert creates a new note in the database, assigning its id
func (s *MySqlStore) Insert(ctx context.Context, note *Note) error {
	if note.UserID == "" {
		return fmt.Errorf("note owner is required")
	}
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(note)
	if result.Error != nil {
		return fmt.Errorf("failed to insert note: %w", result.Error)
	}

	return nil
}

// ListByOwner retrieves the owner's note summaries, newest first
func (s *MySqlStore) ListByOwner(ctx context.Context, userID string) ([]Summary, error) {
	var summaries []Summary
	result := s.db.WithContext(ctx).Model(&Note{}).
		Select("id", "title", "date", "summary", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&summaries)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list notes: %w", result.Error)
	}

	return summaries, nil
}

// GetByOwner retrieves a full note by id, scoped to the owner
func (s *MySqlStore) GetByOwner(ctx context.Context, id uuid.UUID, userID string) (*Note, error) {
	var note Note
	result := s.db.WithContext(ctx).First(&note, "id = ? AND user_id = ?", id, userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", result.Error)
	}

	return &note, nil
}

// DeleteByOwner removes a note by id, scoped to the owner
func (s *MySqlStore) DeleteByOwner(ctx context.Context, id uuid.UUID, userID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Note{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// InMemoryStore is an in-memory note store (for tests and local runs
// without a database)
type InMemoryStore struct {
	notes map[uuid.UUID]*Note
	mu    sync.RWMutex
}

// NewInMemoryStore creates a new in-memory note store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		notes: make(map[uuid.UUID]*Note),
	}
}

// Insert creates a new note in memory, assigning its id
func (s *InMemoryStore) Insert(ctx context.Context, note *Note) error {
	if note.UserID == "" {
		return fmt.Errorf("note owner is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	copied := *note
	s.notes[note.ID] = &copied

	return nil
}

// ListByOwner retrieves the owner's note summaries, newest first
func (s *InMemoryStore) ListByOwner(ctx context.Context, userID string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []Summary
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		summaries = append(summaries, Summary{
			ID:        n.ID,
			Title:     n.Title,
			Date:      n.Date,
			Summary:   n.Summary,
			CreatedAt: n.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	return summaries, nil
}

// GetByOwner retrieves a full note by id, scoped to the owner
func (s *InMemoryStore) GetByOwner(ctx context.Context, id uuid.UUID, userID string) (*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, exists := s.notes[id]
	if !exists || n.UserID != userID {
		return nil, ErrNotFound
	}

	copied := *n
	return &copied, nil
}

// DeleteByOwner removes a note by id, scoped to the owner
func (s *InMemoryStore) DeleteByOwner(ctx context.Context, id uuid.UUID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notes[id]
	if !exists || n.UserID != userID {
		return ErrNotFound
	}

	delete(s.notes, id)
	return nil
}
