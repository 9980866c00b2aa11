package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

// InsertGeneratedSchedule persists a schedule tree in a single transaction,
// backfilling generated ids into the passed structs.
func (r *Repository) InsertGeneratedSchedule(schedule *domain.GeneratedSchedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	scheduleQuery := `
		INSERT INTO generated_schedules (year, month, generated_at)
		VALUES ($1, $2, $3)
		RETURNING id, version
	`
	if err := tx.QueryRowContext(ctx, scheduleQuery, schedule.Year, int(schedule.Month), schedule.GeneratedAt).Scan(&schedule.ID, &schedule.Version); err != nil {
		return err
	}

	dailyQuery := `
		INSERT INTO daily_schedules (generated_schedule_id, date, day_of_week)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	assignmentQuery := `
		INSERT INTO schedule_assignments (daily_schedule_id, member_id, duty_type_id, service_type, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for i := range schedule.DailySchedules {
		daily := &schedule.DailySchedules[i]
		daily.GeneratedScheduleID = schedule.ID

		if err := tx.QueryRowContext(ctx, dailyQuery, schedule.ID, daily.Date, int(daily.DayOfWeek)).Scan(&daily.ID); err != nil {
			return err
		}

		for j := range daily.Assignments {
			assignment := &daily.Assignments[j]
			assignment.DailyScheduleID = daily.ID

			args := []any{daily.ID, assignment.MemberID, assignment.DutyTypeID, assignment.ServiceType, assignment.Notes}
			if err := tx.QueryRowContext(ctx, assignmentQuery, args...).Scan(&assignment.ID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetGeneratedScheduleMetas lists schedules newest first, optionally filtered
// by year and month. Daily schedules are not loaded.
func (r *Repository) GetGeneratedScheduleMetas(year int, month int) ([]*domain.GeneratedSchedule, error) {
	query := `
		SELECT id, year, month, generated_at, version
		FROM generated_schedules
		WHERE ($1 = 0 OR year = $1) AND ($2 = 0 OR month = $2)
		ORDER BY generated_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.GeneratedSchedule, 0)
	for rows.Next() {
		s := &domain.GeneratedSchedule{}
		var monthNumber int
		if err := rows.Scan(&s.ID, &s.Year, &monthNumber, &s.GeneratedAt, &s.Version); err != nil {
			return nil, err
		}
		s.Month = time.Month(monthNumber)
		s.DailySchedules = make([]domain.DailySchedule, 0)
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetGeneratedScheduleByID(id int64) (*domain.GeneratedSchedule, error) {
	metaQuery := `
		SELECT year, month, generated_at, version
		FROM generated_schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.GeneratedSchedule{
		ID:             id,
		DailySchedules: make([]domain.DailySchedule, 0),
	}

	var monthNumber int
	if err := r.dbpool.QueryRowContext(ctx, metaQuery, id).Scan(&schedule.Year, &monthNumber, &schedule.GeneratedAt, &schedule.Version); err != nil {
		return nil, err
	}
	schedule.Month = time.Month(monthNumber)

	treeQuery := `
		SELECT d.id, d.date, d.day_of_week, a.id, a.member_id, a.duty_type_id, a.service_type, a.notes
		FROM daily_schedules d
		LEFT JOIN schedule_assignments a ON a.daily_schedule_id = d.id
		WHERE d.generated_schedule_id = $1
		ORDER BY d.date, a.id
	`

	rows, err := r.dbpool.QueryContext(ctx, treeQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dailyIndex := make(map[int64]int)
	for rows.Next() {
		var (
			daily        domain.DailySchedule
			dayOfWeek    int
			assignmentID sql.NullInt64
			memberID     sql.NullInt64
			dutyTypeID   sql.NullInt64
			serviceType  sql.NullString
			notes        sql.NullString
		)
		dst := []any{&daily.ID, &daily.Date, &dayOfWeek, &assignmentID, &memberID, &dutyTypeID, &serviceType, &notes}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		idx, ok := dailyIndex[daily.ID]
		if !ok {
			daily.GeneratedScheduleID = id
			daily.DayOfWeek = time.Weekday(dayOfWeek)
			daily.Assignments = make([]domain.ScheduleAssignment, 0)
			schedule.DailySchedules = append(schedule.DailySchedules, daily)
			idx = len(schedule.DailySchedules) - 1
			dailyIndex[daily.ID] = idx
		}

		if assignmentID.Valid {
			assignment := domain.ScheduleAssignment{
				ID:              assignmentID.Int64,
				DailyScheduleID: schedule.DailySchedules[idx].ID,
				MemberID:        memberID.Int64,
				DutyTypeID:      dutyTypeID.Int64,
				ServiceType:     domain.ServiceType(serviceType.String),
			}
			if notes.Valid {
				assignment.Notes = &notes.String
			}
			schedule.DailySchedules[idx].Assignments = append(schedule.DailySchedules[idx].Assignments, assignment)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) DeleteGeneratedSchedule(id int64) error {
	query := `
		DELETE FROM generated_schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// UpsertAssignment writes a manual edit back into a stored schedule. The slot
// is keyed by (date, duty type, service); a daily schedule row is created on
// demand for dates the generator left empty.
func (r *Repository) UpsertAssignment(scheduleID int64, date time.Time, dutyTypeID int64, serviceType domain.ServiceType, memberID int64, notes *string) (*domain.ScheduleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var dailyID int64
	findDailyQuery := `
		SELECT id FROM daily_schedules
		WHERE generated_schedule_id = $1 AND date = $2
	`
	err = tx.QueryRowContext(ctx, findDailyQuery, scheduleID, date).Scan(&dailyID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		createDailyQuery := `
			INSERT INTO daily_schedules (generated_schedule_id, date, day_of_week)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, createDailyQuery, scheduleID, date, int(date.Weekday())).Scan(&dailyID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	assignment := &domain.ScheduleAssignment{
		DailyScheduleID: dailyID,
		MemberID:        memberID,
		DutyTypeID:      dutyTypeID,
		ServiceType:     serviceType,
		Notes:           notes,
	}

	upsertQuery := `
		INSERT INTO schedule_assignments (daily_schedule_id, member_id, duty_type_id, service_type, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (daily_schedule_id, duty_type_id, service_type)
		DO UPDATE SET member_id = EXCLUDED.member_id, notes = EXCLUDED.notes
		RETURNING id
	`
	args := []any{dailyID, memberID, dutyTypeID, serviceType, notes}
	if err := tx.QueryRowContext(ctx, upsertQuery, args...).Scan(&assignment.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return assignment, nil
}
