// Package postgres implements the datastore contract on top of a PostgreSQL
// database, one table per collected channel.
package postgres

import (
	"context"
	"fmt"

	"github.com/IBM/pgxpoolprometheus"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/charthound/charthound/internal/datastore"
)

const (
	tablePGTables  = "pg_catalog.pg_tables"
	colSchemaname  = "schemaname"
	colTablename   = "tablename"
	colDate        = "date"
	colAvgViewers  = "average_viewers"
	colStreamDays  = "stream_days"
	tablePrefix    = "streamer_"
	schemaTemplate = `CREATE TABLE IF NOT EXISTS %s (
		date TEXT,
		average_viewers INTEGER,
		stream_days INTEGER,
		PRIMARY KEY (date)
	)`

	errUnableToInstantiate = "unable to instantiate datastore: %w"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	tracer = otel.Tracer("charthound/internal/datastore/postgres")
)

// NewPostgresDatastore connects to the database at the given URL and returns
// a datastore backed by it.
func NewPostgresDatastore(ctx context.Context, url string, options ...Option) (datastore.Datastore, error) {
	config, err := generateConfig(options)
	if err != nil {
		return nil, fmt.Errorf(errUnableToInstantiate, err)
	}

	pgxConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf(errUnableToInstantiate, err)
	}

	if config.connectTimeout > 0 {
		pgxConfig.ConnConfig.ConnectTimeout = config.connectTimeout
	}

	if err := config.poolOpts.ConfigurePgx(pgxConfig, config.includeQueryParametersInTraces); err != nil {
		return nil, fmt.Errorf(errUnableToInstantiate, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		return nil, fmt.Errorf(errUnableToInstantiate, err)
	}

	if config.enablePrometheusStats {
		collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "charthound"})
		if err := prometheus.Register(collector); err != nil {
			pool.Close()
			return nil, fmt.Errorf(errUnableToInstantiate, err)
		}
	}

	return &pgDatastore{pool: pool}, nil
}

type pgDatastore struct {
	pool *pgxpool.Pool
}

var _ datastore.Datastore = (*pgDatastore)(nil)

func (pgd *pgDatastore) ReadyState(ctx context.Context) (datastore.ReadyState, error) {
	if err := pgd.pool.Ping(ctx); err != nil {
		return datastore.ReadyState{Message: err.Error()}, nil
	}

	return datastore.ReadyState{IsReady: true}, nil
}

func (pgd *pgDatastore) Close() error {
	pgd.pool.Close()
	return nil
}
