package checkout

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
	"github.com/live-ls/ls-fulfillment/pkg/status"
)

type TicketRepository interface {
	FindManyByIDs(ctx context.Context, ids []string) ([]Ticket, error)
}

type ticketRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewTicketRepository(logger *logrus.Logger, db *sql.DB) TicketRepository {
	return &ticketRepository{
		logger: logger,
		db:     db,
	}
}

// FindManyByIDs implements TicketRepository.
func (r *ticketRepository) FindManyByIDs(ctx context.Context, ids []string) ([]Ticket, error) {
	query := `SELECT id, event_id, name FROM tickets WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while finding tickets")
	}

	defer rows.Close()

	tickets := make([]Ticket, 0, len(ids))
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while finding tickets")
		}

		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while finding tickets")
	}

	return tickets, nil
}
