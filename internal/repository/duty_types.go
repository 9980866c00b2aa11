package repository

import (
	"context"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

const dutyTypeColumns = `
	id, name, description, category, is_morning_duty, is_evening_duty, is_wednesday_duty,
	order_index_am, order_index_pm, order_index_wednesday, exempt_from_service_max,
	manually_scheduled, manual_assignment_type, is_monthly_duty, monthly_duty_frequency,
	skip_last_sunday_evening, created_at, version
`

func scanDutyType(scan func(dest ...any) error) (*domain.DutyType, error) {
	d := &domain.DutyType{}
	dst := []any{
		&d.ID, &d.Name, &d.Description, &d.Category, &d.IsMorningDuty, &d.IsEveningDuty, &d.IsWednesdayDuty,
		&d.OrderIndexAM, &d.OrderIndexPM, &d.OrderIndexWednesday, &d.ExemptFromServiceMax,
		&d.ManuallyScheduled, &d.ManualAssignmentType, &d.IsMonthlyDuty, &d.MonthlyDutyFrequency,
		&d.SkipLastSundayEvening, &d.CreatedAt, &d.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) GetAllDutyTypes() ([]*domain.DutyType, error) {
	query := `
		SELECT ` + dutyTypeColumns + `
		FROM duty_types
		ORDER BY order_index_am, order_index_pm, order_index_wednesday, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dutyTypes := make([]*domain.DutyType, 0)
	for rows.Next() {
		d, err := scanDutyType(rows.Scan)
		if err != nil {
			return nil, err
		}
		dutyTypes = append(dutyTypes, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dutyTypes, nil
}

func (r *Repository) GetDutyTypeByID(id int64) (*domain.DutyType, error) {
	query := `
		SELECT ` + dutyTypeColumns + `
		FROM duty_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanDutyType(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) CreateDutyType(dutyType *domain.DutyType) error {
	query := `
		INSERT INTO duty_types (
			name, description, category, is_morning_duty, is_evening_duty, is_wednesday_duty,
			order_index_am, order_index_pm, order_index_wednesday, exempt_from_service_max,
			manually_scheduled, manual_assignment_type, is_monthly_duty, monthly_duty_frequency,
			skip_last_sunday_evening
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		dutyType.Name, dutyType.Description, dutyType.Category, dutyType.IsMorningDuty, dutyType.IsEveningDuty, dutyType.IsWednesdayDuty,
		dutyType.OrderIndexAM, dutyType.OrderIndexPM, dutyType.OrderIndexWednesday, dutyType.ExemptFromServiceMax,
		dutyType.ManuallyScheduled, dutyType.ManualAssignmentType, dutyType.IsMonthlyDuty, dutyType.MonthlyDutyFrequency,
		dutyType.SkipLastSundayEvening,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&dutyType.ID, &dutyType.CreatedAt, &dutyType.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateDutyType(dutyType *domain.DutyType) error {
	query := `
		UPDATE duty_types
		SET
			name = $1,
			description = $2,
			category = $3,
			is_morning_duty = $4,
			is_evening_duty = $5,
			is_wednesday_duty = $6,
			order_index_am = $7,
			order_index_pm = $8,
			order_index_wednesday = $9,
			exempt_from_service_max = $10,
			manually_scheduled = $11,
			manual_assignment_type = $12,
			is_monthly_duty = $13,
			monthly_duty_frequency = $14,
			skip_last_sunday_evening = $15,
			version = version + 1
		WHERE id = $16 AND version = $17
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		dutyType.Name, dutyType.Description, dutyType.Category, dutyType.IsMorningDuty, dutyType.IsEveningDuty, dutyType.IsWednesdayDuty,
		dutyType.OrderIndexAM, dutyType.OrderIndexPM, dutyType.OrderIndexWednesday, dutyType.ExemptFromServiceMax,
		dutyType.ManuallyScheduled, dutyType.ManualAssignmentType, dutyType.IsMonthlyDuty, dutyType.MonthlyDutyFrequency,
		dutyType.SkipLastSundayEvening, dutyType.ID, dutyType.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&dutyType.CreatedAt, &dutyType.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDutyType(id int64) error {
	query := `
		DELETE FROM duty_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
