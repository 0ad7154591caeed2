// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

// dialect holds the driver specific names
type dialect struct {
	driver          string
	migrations      string
	queueTable      string
	migrationsTable string
	setup           []string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case constants.DriverPostgres:
		return dialect{
			driver:          driver,
			migrations:      "migrations/postgres",
			queueTable:      constants.QueueTablePostgres,
			migrationsTable: constants.QueueSchema + ".schema_migrations",
			setup:           []string{"CREATE SCHEMA IF NOT EXISTS " + constants.QueueSchema},
		}, nil
	case constants.DriverSQLite:
		return dialect{
			driver:          driver,
			migrations:      "migrations/sqlite",
			queueTable:      constants.QueueTableSQLite,
			migrationsTable: constants.QueueSchema + "_schema_migrations",
		}, nil
	}
	return dialect{}, errors.NewConfiguration(fmt.Sprintf("unsupported queue database driver %q", driver))
}
