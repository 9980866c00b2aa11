package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

func scanMemberRows(rows *sql.Rows) ([]*domain.Member, error) {
	byID := make(map[int64]*domain.Member)
	ordered := make([]*domain.Member, 0)

	for rows.Next() {
		var (
			m      domain.Member
			dutyID sql.NullInt64
		)
		dst := []any{&m.ID, &m.FirstName, &m.LastName, &m.HasSubmittedForm, &m.ExcludeFromScheduling, &m.CreatedAt, &m.Version, &dutyID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		member, ok := byID[m.ID]
		if !ok {
			m.AvailableDutyIDs = make([]int64, 0)
			member = &m
			byID[m.ID] = member
			ordered = append(ordered, member)
		}
		if dutyID.Valid {
			member.AvailableDutyIDs = append(member.AvailableDutyIDs, dutyID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ordered, nil
}

func (r *Repository) GetAllMembers() ([]*domain.Member, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.has_submitted_form, m.exclude_from_scheduling, m.created_at, m.version, md.duty_type_id
		FROM members m
		LEFT JOIN member_duties md ON md.member_id = m.id
		ORDER BY m.last_name, m.first_name, m.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMemberRows(rows)
}

// GetSchedulableMembers returns members that the generator may place on a
// roster. Only the exclusion flag gates the pool; hasSubmittedForm is
// informational and a member's declared duties already limit what they can
// be given.
func (r *Repository) GetSchedulableMembers() ([]*domain.Member, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.has_submitted_form, m.exclude_from_scheduling, m.created_at, m.version, md.duty_type_id
		FROM members m
		LEFT JOIN member_duties md ON md.member_id = m.id
		WHERE NOT m.exclude_from_scheduling
		ORDER BY m.last_name, m.first_name, m.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMemberRows(rows)
}

func (r *Repository) GetMemberByID(id int64) (*domain.Member, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.has_submitted_form, m.exclude_from_scheduling, m.created_at, m.version, md.duty_type_id
		FROM members m
		LEFT JOIN member_duties md ON md.member_id = m.id
		WHERE m.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members, err := scanMemberRows(rows)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, sql.ErrNoRows
	}

	return members[0], nil
}

func (r *Repository) CreateMember(member *domain.Member) error {
	query := `
		INSERT INTO members (first_name, last_name, has_submitted_form, exclude_from_scheduling)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{member.FirstName, member.LastName, member.HasSubmittedForm, member.ExcludeFromScheduling}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.CreatedAt, &member.Version); err != nil {
		return err
	}

	if member.AvailableDutyIDs == nil {
		member.AvailableDutyIDs = make([]int64, 0)
	}

	return nil
}

func (r *Repository) UpdateMember(member *domain.Member) error {
	query := `
		UPDATE members
		SET
			first_name = $1,
			last_name = $2,
			has_submitted_form = $3,
			exclude_from_scheduling = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{member.FirstName, member.LastName, member.HasSubmittedForm, member.ExcludeFromScheduling, member.ID, member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.CreatedAt, &member.Version); err != nil {
		return err
	}

	return nil
}

// ReplaceMemberDuties swaps a member's full duty eligibility list in one
// transaction.
func (r *Repository) ReplaceMemberDuties(memberID int64, dutyTypeIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM member_duties WHERE member_id = $1`, memberID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO member_duties (member_id, duty_type_id) VALUES ($1, $2)
	`
	for _, dutyTypeID := range dutyTypeIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, memberID, dutyTypeID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteMember(id int64) error {
	query := `
		DELETE FROM members WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
