// Instance persistence grounded on the teacher's internal/storage/sqlite/
// plans.go revision-row upsert pattern, narrowed from a revisioned day plan
// to a single per-template-per-date override row (spec.md §3's Instance).
package sqlite

import (
	"database/sql"

	"github.com/julianstephens/dayplan/internal/models"
)

const instanceColumns = `id, template_id, date, status, modified_start_time, note, completed_at`

// ListByDate implements ports.InstanceStore.
func (s *Store) ListByDate(date string) ([]models.Instance, error) {
	rows, err := s.db.Query("SELECT "+instanceColumns+" FROM instances WHERE date = ? ORDER BY template_id", date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Instance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}

// Upsert implements ports.InstanceStore.
func (s *Store) Upsert(instance models.Instance) error {
	if instance.ID == "" {
		instance.ID = models.InstanceID(instance.Date, instance.TemplateID)
	}
	var completedAt sql.NullInt64
	if instance.CompletedAt != nil {
		completedAt = sql.NullInt64{Int64: *instance.CompletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO instances (`+instanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(template_id, date) DO UPDATE SET
			id = excluded.id,
			status = excluded.status,
			modified_start_time = excluded.modified_start_time,
			note = excluded.note,
			completed_at = excluded.completed_at
	`, instance.ID, instance.TemplateID, instance.Date, instance.Status,
		instance.ModifiedStartTime, instance.Note, completedAt)
	return err
}

// Remove implements ports.InstanceStore.
func (s *Store) Remove(instanceID string) error {
	_, err := s.db.Exec("DELETE FROM instances WHERE id = ?", instanceID)
	return err
}

func scanInstance(rows *sql.Rows) (models.Instance, error) {
	var inst models.Instance
	var completedAt sql.NullInt64
	err := rows.Scan(&inst.ID, &inst.TemplateID, &inst.Date, &inst.Status,
		&inst.ModifiedStartTime, &inst.Note, &completedAt)
	if err != nil {
		return models.Instance{}, err
	}
	if completedAt.Valid {
		v := completedAt.Int64
		inst.CompletedAt = &v
	}
	return inst, nil
}
