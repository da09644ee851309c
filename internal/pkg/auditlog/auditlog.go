// Package auditlog appends one structured record per pipeline stage
// transition. The sink is append-only and write failures never propagate to
// the caller; losing a record must not fail the transaction it describes.
package auditlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

type Store interface {
	Record(ctx context.Context, phase string, data map[string]interface{})
}

type postgresStore struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewPostgresStore(logger *logrus.Logger, db *sql.DB) Store {
	return &postgresStore{
		logger: logger,
		db:     db,
	}
}

// Record implements Store.
func (s *postgresStore) Record(ctx context.Context, phase string, data map[string]interface{}) {
	buff, err := json.Marshal(data)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("phase", phase).Warn("unable to marshal audit record data")
		return
	}

	query := `INSERT INTO logs (phase, data, ts) VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, query, phase, buff, time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("phase", phase).Warn("unable to append audit record")
	}
}
