package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/dayplan/internal/models"
)

const templateColumns = `id, name, description, duration_minutes, priority, mandatory,
	scheduling_type, default_time, time_window, depends_on, buffer_minutes,
	min_duration_minutes, is_active, recurrence_rule, updated_at`

// List implements ports.TemplateStore. Soft-deleted (inactive) templates
// are still returned, per spec.md's own "instances referencing a retired
// template keep resolving" requirement; callers filter for the library view
// with internal/library.
func (s *Store) List() ([]models.Template, error) {
	rows, err := s.db.Query("SELECT " + templateColumns + " FROM templates ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create implements ports.TemplateStore, generating an id when the caller
// hasn't provided one.
func (s *Store) Create(t models.Template) (models.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.upsertTemplate(t); err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// Update implements ports.TemplateStore.
func (s *Store) Update(id string, patch models.Template) (models.Template, error) {
	patch.ID = id
	if err := s.upsertTemplate(patch); err != nil {
		return models.Template{}, err
	}
	return patch, nil
}

// SoftDelete implements ports.TemplateStore by flipping is_active rather
// than removing the row, so past instances referencing it keep resolving.
func (s *Store) SoftDelete(id string) error {
	res, err := s.db.Exec("UPDATE templates SET is_active = 0 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("template with id %s not found", id)
	}
	return nil
}

// Duplicate implements ports.TemplateStore: copies a template under a fresh
// id with " (copy)" appended to its name, matching the library's expected
// "duplicate this template" affordance.
func (s *Store) Duplicate(id string) (models.Template, error) {
	row := s.db.QueryRow("SELECT "+templateColumns+" FROM templates WHERE id = ?", id)
	original, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Template{}, fmt.Errorf("template with id %s not found", id)
		}
		return models.Template{}, err
	}

	dup := original
	dup.ID = uuid.NewString()
	dup.Name = original.Name + " (copy)"
	if err := s.upsertTemplate(dup); err != nil {
		return models.Template{}, err
	}
	return dup, nil
}

func (s *Store) upsertTemplate(t models.Template) error {
	var recurrenceJSON sql.NullString
	if t.RecurrenceRule != nil {
		b, err := json.Marshal(t.RecurrenceRule)
		if err != nil {
			return fmt.Errorf("marshal recurrence rule: %w", err)
		}
		recurrenceJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			duration_minutes = excluded.duration_minutes,
			priority = excluded.priority,
			mandatory = excluded.mandatory,
			scheduling_type = excluded.scheduling_type,
			default_time = excluded.default_time,
			time_window = excluded.time_window,
			depends_on = excluded.depends_on,
			buffer_minutes = excluded.buffer_minutes,
			min_duration_minutes = excluded.min_duration_minutes,
			is_active = excluded.is_active,
			recurrence_rule = excluded.recurrence_rule,
			updated_at = excluded.updated_at
	`,
		t.ID, t.Name, t.Description, t.DurationMinutes, t.Priority, t.Mandatory,
		t.SchedulingType, t.DefaultTime, t.TimeWindow, nullableString(t.DependsOn),
		nullableInt(t.BufferMinutes), nullableInt(t.MinDurationMinutes), t.IsActive,
		recurrenceJSON, t.UpdatedAt,
	)
	return err
}

// rowScanner abstracts over *sql.Row and *sql.Rows for a shared scan helper.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (models.Template, error) {
	var t models.Template
	var dependsOn sql.NullString
	var bufferMinutes, minDurationMinutes sql.NullInt64
	var recurrenceJSON sql.NullString

	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.DurationMinutes, &t.Priority, &t.Mandatory,
		&t.SchedulingType, &t.DefaultTime, &t.TimeWindow, &dependsOn,
		&bufferMinutes, &minDurationMinutes, &t.IsActive, &recurrenceJSON, &t.UpdatedAt,
	)
	if err != nil {
		return models.Template{}, err
	}

	if dependsOn.Valid {
		v := dependsOn.String
		t.DependsOn = &v
	}
	if bufferMinutes.Valid {
		v := int(bufferMinutes.Int64)
		t.BufferMinutes = &v
	}
	if minDurationMinutes.Valid {
		v := int(minDurationMinutes.Int64)
		t.MinDurationMinutes = &v
	}
	if recurrenceJSON.Valid && recurrenceJSON.String != "" {
		var rule models.RecurrenceRule
		if err := json.Unmarshal([]byte(recurrenceJSON.String), &rule); err != nil {
			return models.Template{}, fmt.Errorf("unmarshal recurrence rule for %s: %w", t.ID, err)
		}
		t.RecurrenceRule = &rule
	}
	return t, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
