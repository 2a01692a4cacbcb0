// ScheduleCache persists the memoized schedule result across process
// restarts, complementing internal/store's in-process memoization with a
// durable one keyed the same way spec.md §4.J describes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/julianstephens/dayplan/internal/models"
)

// GetCached implements ports.ScheduleCache.
func (s *Store) GetCached(date string) (models.ScheduleResult, bool) {
	var resultJSON string
	row := s.db.QueryRow("SELECT result_json FROM schedule_cache WHERE date = ?", date)
	if err := row.Scan(&resultJSON); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return models.ScheduleResult{}, false
		}
		return models.ScheduleResult{}, false
	}

	var result models.ScheduleResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return models.ScheduleResult{}, false
	}
	return result, true
}

// PutCached implements ports.ScheduleCache. Marshal failures are swallowed;
// a cold cache only costs a recompute, never correctness.
func (s *Store) PutCached(date string, result models.ScheduleResult) {
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(`
		INSERT INTO schedule_cache (date, input_hash, result_json, cached_at)
		VALUES (?, '', ?, 0)
		ON CONFLICT(date) DO UPDATE SET result_json = excluded.result_json
	`, date, string(b))
}
