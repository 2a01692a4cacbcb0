package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/dayplan/internal/models"
)

// Get implements ports.SettingsStore.
func (s *Store) Get() (models.Settings, error) {
	var settings models.Settings
	row := s.db.QueryRow("SELECT desired_sleep_duration_hours, default_wake_time, default_sleep_time FROM settings WHERE id = 1")
	err := row.Scan(&settings.DesiredSleepDurationHours, &settings.DefaultWakeTime, &settings.DefaultSleepTime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Save implements ports.SettingsStore.
func (s *Store) Save(settings models.Settings) (models.Settings, error) {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, desired_sleep_duration_hours, default_wake_time, default_sleep_time)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			desired_sleep_duration_hours = excluded.desired_sleep_duration_hours,
			default_wake_time = excluded.default_wake_time,
			default_sleep_time = excluded.default_sleep_time
	`, settings.DesiredSleepDurationHours, settings.DefaultWakeTime, settings.DefaultSleepTime)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
