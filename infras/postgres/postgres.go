package postgres

import (
	"errors"
	"fmt"
	"net"
	"proctor/config"
	"proctor/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection pairs a read and a write pool, following the replicated setup
// the deployment uses. Both point at the same database in development.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read: connect("read", pg.Read.Username, pg.Read.Password, pg.Read.Host, pg.Read.Port,
			pg.Read.Name, pg.Read.SSLMode, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", pg.Write.Username, pg.Write.Password, pg.Write.Host, pg.Write.Port,
			pg.Write.Name, pg.Write.SSLMode, pg.MaxRetry, pg.RetryWaitTime),
	}
}

func connect(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)

	for retry := 0; retry < maxRetry; retry++ {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.Info().
				Str("name", name).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(maxIdleConnections)
			sqlDB.SetMaxOpenConns(maxOpenConnections)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}

// IsUniqueViolation reports whether the error is a Postgres unique-constraint
// violation. The reservation natural key depends on this to stay race free.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}
