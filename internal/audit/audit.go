// Package audit records security-relevant events (registrations, logins,
// hard deletes) to the audit_logs table. Writes are best-effort: a failed
// audit write is logged and never fails the request that triggered it.
package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	ActionRegister    = "user.register"
	ActionLogin       = "user.login"
	ActionLoginFailed = "user.login_failed"
	ActionDelete      = "resource.delete"
)

type Entry struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	IP         string
}

type Log struct {
	Pool   *pgxpool.Pool
	Logger zerolog.Logger
}

func NewLog(pool *pgxpool.Pool, logger zerolog.Logger) *Log {
	return &Log{Pool: pool, Logger: logger}
}

// Record inserts an audit row. Safe to call on a nil receiver or nil pool.
func (l *Log) Record(ctx context.Context, e Entry) {
	if l == nil || l.Pool == nil {
		return
	}
	_, err := l.Pool.Exec(ctx, `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip)
		VALUES ($1, $2, $3, $4, NULLIF($5,''))`,
		e.UserID, e.Action, e.EntityType, e.EntityID, e.IP)
	if err != nil {
		l.Logger.Debug().Err(err).Str("action", e.Action).Msg("audit write failed")
	}
}
