package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// TicketFilter captures ticket listing parameters. BusinessID is mandatory;
// role scoping fills AssigneeUserID or Department before the query runs so
// narrowing happens in SQL rather than over a full collection read.
type TicketFilter struct {
	BusinessID     string
	AssigneeUserID *string
	Department     *string
	Statuses       []domain.TicketStatus
	Limit          int
	Offset         int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, businessID, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatusSince(ctx context.Context, businessID string, since time.Time) (map[domain.TicketStatus]int, error)
	CountByDepartmentSince(ctx context.Context, businessID string, since time.Time) (map[string]int, error)
}

const ticketColumns = `id, business_id, room_number, request, department, priority, status,
               assigned_to, assigned_by, assigned_by_name, notes, translations, created_at, updated_at`

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (business_id, room_number, request, department, priority, status, notes, translations)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.BusinessID,
		ticket.RoomNumber,
		ticket.Request,
		ticket.Department,
		ticket.Priority,
		ticket.Status,
		ticket.Notes,
		ticket.Translations,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET room_number=$1, request=$2, department=$3, priority=$4, status=$5,
            assigned_to=$6, assigned_by=$7, assigned_by_name=$8, notes=$9, translations=$10, updated_at=NOW()
        WHERE id=$11 AND business_id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.RoomNumber,
		ticket.Request,
		ticket.Department,
		ticket.Priority,
		ticket.Status,
		ticket.AssignedTo,
		ticket.AssignedBy,
		ticket.AssignedByName,
		ticket.Notes,
		ticket.Translations,
		ticket.ID,
		ticket.BusinessID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, businessID, id string) (*domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE id=$1 AND business_id=$2`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id, businessID).Scan(
		&ticket.ID,
		&ticket.BusinessID,
		&ticket.RoomNumber,
		&ticket.Request,
		&ticket.Department,
		&ticket.Priority,
		&ticket.Status,
		&ticket.AssignedTo,
		&ticket.AssignedBy,
		&ticket.AssignedByName,
		&ticket.Notes,
		&ticket.Translations,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{filter.BusinessID}
	clauses := []string{"business_id=$1"}

	if filter.AssigneeUserID != nil {
		args = append(args, *filter.AssigneeUserID)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Department)))
		clauses = append(clauses, fmt.Sprintf("LOWER(department)=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.BusinessID,
			&ticket.RoomNumber,
			&ticket.Request,
			&ticket.Department,
			&ticket.Priority,
			&ticket.Status,
			&ticket.AssignedTo,
			&ticket.AssignedBy,
			&ticket.AssignedByName,
			&ticket.Notes,
			&ticket.Translations,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByStatusSince(ctx context.Context, businessID string, since time.Time) (map[domain.TicketStatus]int, error) {
	const query = `
        SELECT status, COUNT(*) FROM tickets
        WHERE business_id=$1 AND created_at >= $2
        GROUP BY status`
	rows, err := r.pool.Query(ctx, query, businessID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByDepartmentSince(ctx context.Context, businessID string, since time.Time) (map[string]int, error) {
	const query = `
        SELECT LOWER(department), COUNT(*) FROM tickets
        WHERE business_id=$1 AND created_at >= $2
        GROUP BY LOWER(department)`
	rows, err := r.pool.Query(ctx, query, businessID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var department string
		var count int
		if err := rows.Scan(&department, &count); err != nil {
			return nil, err
		}
		result[department] = count
	}
	return result, rows.Err()
}
