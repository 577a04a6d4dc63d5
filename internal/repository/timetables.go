package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

func (r *Repository) InsertTimetable(timetable *domain.Timetable) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO timetables (catalog_id, batch_id, variant, fitness, gene_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	args := []any{timetable.CatalogID, timetable.BatchID, timetable.Variant, timetable.Fitness, timetable.GeneCount}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&timetable.ID, &timetable.CreatedAt, &timetable.Version); err != nil {
		return err
	}

	for i, entry := range timetable.Entries {
		query := `
			INSERT INTO timetable_entries (timetable_id, position, teacher_id, day, slot, course_id, classroom_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		args := []any{timetable.ID, i, entry.TeacherID, entry.Day, entry.Slot, entry.CourseID, entry.ClassroomID}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	for _, stats := range timetable.Stats {
		query := `
			INSERT INTO timetable_generation_stats (timetable_id, generation, evaluations, mean, std, min, max)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		args := []any{timetable.ID, stats.Generation, stats.Evaluations, stats.Mean, stats.Std, stats.Min, stats.Max}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimetablesByCatalogID(catalogID int64) ([]*domain.Timetable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, batch_id, variant, fitness, gene_count, created_at, version
		FROM timetables WHERE catalog_id = $1
		ORDER BY id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timetables := make([]*domain.Timetable, 0)
	for rows.Next() {
		timetable := &domain.Timetable{
			CatalogID: catalogID,
		}
		dst := []any{&timetable.ID, &timetable.BatchID, &timetable.Variant, &timetable.Fitness, &timetable.GeneCount, &timetable.CreatedAt, &timetable.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		timetables = append(timetables, timetable)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, timetable := range timetables {
		if err := r.fillTimetable(ctx, timetable); err != nil {
			return nil, err
		}
	}

	return timetables, nil
}

// GetBestLatestTimetable 返回该目录最近一批排课结果中冲突分数最低的课表，没有时返回 sql.ErrNoRows
func (r *Repository) GetBestLatestTimetable(catalogID int64) (*domain.Timetable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, batch_id, variant, fitness, gene_count, created_at, version
		FROM timetables
		WHERE batch_id = (
			SELECT batch_id FROM timetables WHERE catalog_id = $1 ORDER BY id DESC LIMIT 1
		)
		ORDER BY fitness, id
		LIMIT 1
	`

	timetable := &domain.Timetable{
		CatalogID: catalogID,
	}
	dst := []any{&timetable.ID, &timetable.BatchID, &timetable.Variant, &timetable.Fitness, &timetable.GeneCount, &timetable.CreatedAt, &timetable.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, catalogID).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.fillTimetable(ctx, timetable); err != nil {
		return nil, err
	}

	return timetable, nil
}

// fillTimetable 读取课表的条目和每一代的统计
func (r *Repository) fillTimetable(ctx context.Context, timetable *domain.Timetable) error {
	timetable.Entries = make([]domain.TimetableEntry, 0, timetable.GeneCount)
	timetable.Stats = make([]domain.GenerationStats, 0)

	query := `
		SELECT teacher_id, day, slot, course_id, classroom_id
		FROM timetable_entries WHERE timetable_id = $1
		ORDER BY position
	`
	rows, err := r.dbpool.QueryContext(ctx, query, timetable.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.TimetableEntry
		if err := rows.Scan(&entry.TeacherID, &entry.Day, &entry.Slot, &entry.CourseID, &entry.ClassroomID); err != nil {
			return err
		}
		timetable.Entries = append(timetable.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT generation, evaluations, mean, std, min, max
		FROM timetable_generation_stats WHERE timetable_id = $1
		ORDER BY generation
	`
	statsRows, err := r.dbpool.QueryContext(ctx, query, timetable.ID)
	if err != nil {
		return err
	}
	defer statsRows.Close()

	for statsRows.Next() {
		var stats domain.GenerationStats
		if err := statsRows.Scan(&stats.Generation, &stats.Evaluations, &stats.Mean, &stats.Std, &stats.Min, &stats.Max); err != nil {
			return err
		}
		timetable.Stats = append(timetable.Stats, stats)
	}

	return statsRows.Err()
}
