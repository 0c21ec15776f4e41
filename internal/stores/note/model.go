package note

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is a persisted action item. An empty assignee means unassigned
type Task struct {
	Text     string `json:"text"`
	Assignee string `json:"assignee"`
}

// StringList is a string slice stored as a JSON column
type StringList []string

// Value implements the driver.Valuer interface for database storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

// TaskList is a task slice stored as a JSON column
type TaskList []Task

// Value implements the driver.Valuer interface for database storage
func (l TaskList) Value() (driver.Value, error) {
	if l == nil {
		l = TaskList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *TaskList) Scan(value any) error {
	return scanJSON(value, l)
}

// scanJSON unmarshals a JSON column into dest
func scanJSON(value any, dest any) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}

	return json.Unmarshal(bytes, dest)
}

// Note is a persisted meeting record. Notes are immutable once
// created; there is deliberately no update path
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	UserID    string     `json:"user_id" gorm:"size:255;not null;index"`
	Title     string     `json:"title" gorm:"size:512;not null"`
	Date      string     `json:"date" gorm:"size:255"`
	Summary   string     `json:"summary" gorm:"type:text"`
	Attendees StringList `json:"attendees" gorm:"type:text"`
	Notes     StringList `json:"notes" gorm:"type:text"`
	Tasks     TaskList   `json:"tasks" gorm:"type:text"`
}

// TableName specifies the database table name for GORM
func (*Note) TableName() string {
	return "meeting_notes"
}

// Summary is the list projection of a note; the heavy sequence columns
// are omitted for list efficiency
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
