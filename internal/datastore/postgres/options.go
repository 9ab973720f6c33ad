package postgres

import (
	"fmt"
	"time"
)

type postgresOptions struct {
	poolOpts PoolOptions

	connectTimeout                 time.Duration
	enablePrometheusStats          bool
	includeQueryParametersInTraces bool
}

const (
	errConnectTimeoutNegative = "connect timeout must not be negative: %s"

	defaultConnectTimeout        = 10 * time.Second
	defaultEnablePrometheusStats = false
)

// Option provides the facility to configure how the datastore connects to
// and uses its backing database.
type Option func(*postgresOptions)

func generateConfig(options []Option) (postgresOptions, error) {
	computed := postgresOptions{
		connectTimeout:        defaultConnectTimeout,
		enablePrometheusStats: defaultEnablePrometheusStats,
	}

	for _, option := range options {
		option(&computed)
	}

	if computed.connectTimeout < 0 {
		return computed, fmt.Errorf(errConnectTimeoutNegative, computed.connectTimeout)
	}

	return computed, nil
}

// ConnMaxIdleTime is the duration after which an idle connection will be
// automatically closed by the pool's health check.
//
// This value defaults to having no maximum.
func ConnMaxIdleTime(idle time.Duration) Option {
	return func(po *postgresOptions) { po.poolOpts.ConnMaxIdleTime = &idle }
}

// ConnMaxLifetime is the duration since creation after which a connection will
// be automatically closed.
//
// This value defaults to having no maximum.
func ConnMaxLifetime(lifetime time.Duration) Option {
	return func(po *postgresOptions) { po.poolOpts.ConnMaxLifetime = &lifetime }
}

// ConnHealthCheckInterval is the frequency at which both idle and max
// lifetime connections are checked, and also the frequency at which the
// minimum number of connections is checked.
//
// This value defaults to 30s.
func ConnHealthCheckInterval(interval time.Duration) Option {
	return func(po *postgresOptions) { po.poolOpts.ConnHealthCheckInterval = &interval }
}

// MaxOpenConns is the maximum size of the connection pool.
//
// This value defaults to having no maximum.
func MaxOpenConns(conns int) Option {
	return func(po *postgresOptions) { po.poolOpts.MaxOpenConns = &conns }
}

// MinOpenConns is the minimum size of the connection pool. The pool will be
// proactively kept at least this large.
//
// This value defaults to zero.
func MinOpenConns(conns int) Option {
	return func(po *postgresOptions) { po.poolOpts.MinOpenConns = &conns }
}

// ConnectTimeout is the maximum time to wait when establishing each new
// database connection.
//
// This value defaults to 10s.
func ConnectTimeout(timeout time.Duration) Option {
	return func(po *postgresOptions) { po.connectTimeout = timeout }
}

// WithEnablePrometheusStats marks whether pool metrics are registered with
// the default Prometheus registry.
//
// Prometheus stats are disabled by default.
func WithEnablePrometheusStats(enablePrometheusStats bool) Option {
	return func(po *postgresOptions) { po.enablePrometheusStats = enablePrometheusStats }
}

// WithQueryParametersInTraces marks whether query parameters are included in
// the spans emitted for database queries.
//
// Parameters are excluded by default.
func WithQueryParametersInTraces(include bool) Option {
	return func(po *postgresOptions) { po.includeQueryParametersInTraces = include }
}
