package postgresql

import (
	"database/sql"
	"sync"

	_ "github.com/lib/pq"

	"github.com/live-ls/ls-fulfillment/config"
	"github.com/live-ls/ls-fulfillment/pkg/applogger"
)

var once sync.Once

var db *sql.DB

func GetDatabase() *sql.DB {
	once.Do(func() {
		c := config.Get()
		logger := applogger.GetLogrus()

		conn, err := sql.Open("postgres", c.Postgres.DSN)
		if err != nil {
			logger.WithError(err).Fatal("unable to open postgresql connection")
		}

		conn.SetMaxOpenConns(c.Postgres.MaxOpenConns)
		conn.SetMaxIdleConns(c.Postgres.MaxIdleConns)

		db = conn
	})

	return db
}
