// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// QueueSchema is the PostgreSQL schema owning the queue table
	QueueSchema = "plugin_zoom_rooms"

	// QueueTablePostgres is the qualified queue table name on PostgreSQL
	QueueTablePostgres = QueueSchema + ".queue"

	// QueueTableSQLite is the queue table name on SQLite, which has no schemas
	QueueTableSQLite = QueueSchema + "_queue"

	// DriverPostgres is the sqlx driver name for lib/pq
	DriverPostgres = "postgres"

	// DriverSQLite is the sqlx driver name for modernc.org/sqlite
	DriverSQLite = "sqlite"
)
