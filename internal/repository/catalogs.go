package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

func (r *Repository) CreateCatalog(catalog *domain.Catalog) error {
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
		INSERT INTO catalogs (name, days, slots)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, catalog.Name, catalog.Days, catalog.Slots).Scan(&catalog.ID, &catalog.CreatedAt, &catalog.Version); err != nil {
		return err
	}

	// 课程必须先于教师插入，因为教师的资格表引用了课程
	for _, course := range catalog.Courses {
		query := `
			INSERT INTO catalog_courses (catalog_id, course_id, name, times_per_week)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, catalog.ID, course.ID, course.Name, course.TimesPerWeek); err != nil {
			return err
		}
	}

	for _, teacher := range catalog.Teachers {
		query := `
			INSERT INTO catalog_teachers (catalog_id, teacher_id, name, code)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, catalog.ID, teacher.ID, teacher.Name, teacher.Code); err != nil {
			return err
		}

		for _, courseID := range teacher.CourseIDs {
			query := `
				INSERT INTO catalog_teacher_courses (catalog_id, teacher_id, course_id)
				VALUES ($1, $2, $3)
			`
			if _, err := tx.ExecContext(ctx, query, catalog.ID, teacher.ID, courseID); err != nil {
				return err
			}
		}
	}

	for _, classroom := range catalog.Classrooms {
		query := `
			INSERT INTO catalog_classrooms (catalog_id, classroom_id, name)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, catalog.ID, classroom.ID, classroom.Name); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAllCatalogs 只返回目录的元数据，不包含教师、课程和教室
func (r *Repository) GetAllCatalogs() ([]*domain.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, days, slots, created_at, version
		FROM catalogs
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalogs := make([]*domain.Catalog, 0)
	for rows.Next() {
		catalog := &domain.Catalog{}
		dst := []any{&catalog.ID, &catalog.Name, &catalog.Days, &catalog.Slots, &catalog.CreatedAt, &catalog.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return catalogs, nil
}

func (r *Repository) GetCatalog(id int64) (*domain.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	catalog := &domain.Catalog{
		ID:         id,
		Teachers:   make([]domain.Teacher, 0),
		Courses:    make([]domain.Course, 0),
		Classrooms: make([]domain.Classroom, 0),
	}

	query := `
		SELECT name, days, slots, created_at, version
		FROM catalogs WHERE id = $1
	`
	dst := []any{&catalog.Name, &catalog.Days, &catalog.Slots, &catalog.CreatedAt, &catalog.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	// 课程
	query = `
		SELECT course_id, name, times_per_week
		FROM catalog_courses WHERE catalog_id = $1
		ORDER BY course_id
	`
	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.TimesPerWeek); err != nil {
			return nil, err
		}
		catalog.Courses = append(catalog.Courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 教师及其可讲授的课程
	query = `
		SELECT ct.teacher_id, ct.name, ct.code, ctc.course_id
		FROM catalog_teachers ct
		LEFT JOIN catalog_teacher_courses ctc ON ct.catalog_id = ctc.catalog_id AND ct.teacher_id = ctc.teacher_id
		WHERE ct.catalog_id = $1
		ORDER BY ct.teacher_id, ctc.course_id
	`
	teacherRows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer teacherRows.Close()

	teacherPos := make(map[int64]int) // teacherID -> catalog.Teachers 中的下标
	for teacherRows.Next() {
		var row struct {
			teacherID int64
			name      string
			code      string
			courseID  sql.NullInt64
		}
		if err := teacherRows.Scan(&row.teacherID, &row.name, &row.code, &row.courseID); err != nil {
			return nil, err
		}

		pos, exists := teacherPos[row.teacherID]
		if !exists {
			pos = len(catalog.Teachers)
			teacherPos[row.teacherID] = pos
			catalog.Teachers = append(catalog.Teachers, domain.Teacher{
				ID:        row.teacherID,
				Name:      row.name,
				Code:      row.code,
				CourseIDs: make([]int64, 0),
			})
		}

		if !row.courseID.Valid {
			// 说明这位教师没有任何可讲授的课程
			continue
		}
		catalog.Teachers[pos].CourseIDs = append(catalog.Teachers[pos].CourseIDs, row.courseID.Int64)
	}
	if err := teacherRows.Err(); err != nil {
		return nil, err
	}

	// 教室
	query = `
		SELECT classroom_id, name
		FROM catalog_classrooms WHERE catalog_id = $1
		ORDER BY classroom_id
	`
	classroomRows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer classroomRows.Close()

	for classroomRows.Next() {
		var classroom domain.Classroom
		if err := classroomRows.Scan(&classroom.ID, &classroom.Name); err != nil {
			return nil, err
		}
		catalog.Classrooms = append(catalog.Classrooms, classroom)
	}
	if err := classroomRows.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}

func (r *Repository) DeleteCatalog(id int64) error {
	query := `
		DELETE FROM catalogs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
