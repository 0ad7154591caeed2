// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package sqlstore persists the calendar operation queue in PostgreSQL or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

// deleteBatchSize bounds the number of bind variables per DELETE statement
const deleteBatchSize = 500

// queueRow is the database representation of a queue entry
type queueRow struct {
	ID         int64          `db:"id"`
	EntryID    string         `db:"entry_id"`
	ZoomRoomID string         `db:"zoom_room_id"`
	Action     int            `db:"action"`
	EntryData  sql.NullString `db:"entry_data"`
	ExtraArgs  sql.NullString `db:"extra_args"`
}

// Store is the SQL backed queue repository
type Store struct {
	db      *sqlx.DB
	dialect dialect
}

// Ensure Store implements the QueueRepository interface
var _ port.QueueRepository = (*Store)(nil)

// Open connects to the queue database and applies pending migrations
func Open(ctx context.Context, config Config) (*Store, error) {
	d, err := dialectFor(config.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, errors.NewServiceUnavailable("failed to open queue database", err)
	}

	if config.Driver == constants.DriverSQLite {
		// a single connection keeps in-memory databases shared and serializes writers
		db.SetMaxOpenConns(1)
	} else {
		if config.MaxOpenConns > 0 {
			db.SetMaxOpenConns(config.MaxOpenConns)
			db.SetMaxIdleConns(config.MaxOpenConns)
		}
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewServiceUnavailable("failed to ping queue database", err)
	}

	store := &Store{db: db, dialect: d}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "queue database ready", "driver", config.Driver, "table", d.queueTable)
	return store, nil
}

// Close closes the database pool
func (s *Store) Close() error {
	return s.db.Close()
}

// IsReady checks the database is reachable
func (s *Store) IsReady(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.NewServiceUnavailable("queue database is not reachable", err)
	}
	return nil
}

// Record appends entries in their own transaction
func (s *Store) Record(ctx context.Context, entries ...model.QueueEntry) error {
	return s.WithinTx(ctx, func(w port.QueueWriter) error {
		return w.Record(ctx, entries...)
	})
}

// WithinTx runs fn in one transaction; it rolls back when fn fails
func (s *Store) WithinTx(ctx context.Context, fn func(port.QueueWriter) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewServiceUnavailable("failed to begin queue transaction", err)
	}

	if err := fn(&txWriter{tx: tx, insert: s.insertQuery()}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "failed to roll back queue transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewServiceUnavailable("failed to commit queue transaction", err)
	}
	return nil
}

// ListPending returns every pending entry in insertion order
func (s *Store) ListPending(ctx context.Context) ([]model.QueueEntry, error) {
	query := fmt.Sprintf(
		"SELECT id, entry_id, zoom_room_id, action, entry_data, extra_args FROM %s ORDER BY id ASC",
		s.dialect.queueTable,
	)

	var rows []queueRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.NewServiceUnavailable("failed to list queue entries", err)
	}

	entries := make([]model.QueueEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteEntries removes the given entries in one transaction
func (s *Store) DeleteEntries(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewServiceUnavailable("failed to begin queue transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(ids); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(ids))

		query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", s.dialect.queueTable), ids[start:end])
		if err != nil {
			return fmt.Errorf("failed to build delete query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return errors.NewServiceUnavailable("failed to delete queue entries", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewServiceUnavailable("failed to commit queue deletion", err)
	}
	return nil
}

func (s *Store) insertQuery() string {
	return s.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (entry_id, zoom_room_id, action, entry_data, extra_args) VALUES (?, ?, ?, ?, ?)",
		s.dialect.queueTable,
	))
}

// txWriter appends entries inside an open transaction
type txWriter struct {
	tx     *sqlx.Tx
	insert string
}

// Record validates and inserts entries in argument order
func (w *txWriter) Record(ctx context.Context, entries ...model.QueueEntry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		row, err := fromModel(entry)
		if err != nil {
			return err
		}
		if _, err := w.tx.ExecContext(ctx, w.insert, row.EntryID, row.ZoomRoomID, row.Action, row.EntryData, row.ExtraArgs); err != nil {
			return errors.NewServiceUnavailable("failed to insert queue entry", err)
		}
	}
	return nil
}

func fromModel(entry model.QueueEntry) (queueRow, error) {
	row := queueRow{
		EntryID:    entry.EntryID,
		ZoomRoomID: entry.ZoomRoomID,
		Action:     int(entry.Action),
	}
	if entry.EntryData != nil {
		data, err := json.Marshal(entry.EntryData)
		if err != nil {
			return queueRow{}, fmt.Errorf("failed to encode entry data: %w", err)
		}
		row.EntryData = sql.NullString{String: string(data), Valid: true}
	}
	if entry.ExtraArgs != nil {
		args, err := json.Marshal(entry.ExtraArgs)
		if err != nil {
			return queueRow{}, fmt.Errorf("failed to encode extra args: %w", err)
		}
		row.ExtraArgs = sql.NullString{String: string(args), Valid: true}
	}
	return row, nil
}

// toModel decodes a row; the action is not checked so the drain worker sees unknown values
func (r queueRow) toModel() (model.QueueEntry, error) {
	entry := model.QueueEntry{
		ID:         r.ID,
		EntryID:    r.EntryID,
		ZoomRoomID: r.ZoomRoomID,
		Action:     model.Action(r.Action),
	}
	if r.EntryData.Valid {
		entry.EntryData = &model.EntryData{}
		if err := json.Unmarshal([]byte(r.EntryData.String), entry.EntryData); err != nil {
			return model.QueueEntry{}, errors.NewUnexpected(fmt.Sprintf("queue entry %d has malformed entry data", r.ID), err)
		}
	}
	if r.ExtraArgs.Valid {
		entry.ExtraArgs = &model.ExtraArgs{}
		if err := json.Unmarshal([]byte(r.ExtraArgs.String), entry.ExtraArgs); err != nil {
			return model.QueueEntry{}, errors.NewUnexpected(fmt.Sprintf("queue entry %d has malformed extra args", r.ID), err)
		}
	}
	return entry, nil
}
