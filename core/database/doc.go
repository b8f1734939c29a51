// Package database handles database connections and reading roster tables.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection and verifies it with a ping bounded by
// TimeoutSeconds. The connection is optional: without it only file and
// storage sources are available.
//
// # Table Sources
//
// LoadTable reads a whole table (the db://<table> source) into the tabular
// model. Values from numeric columns become numbers; everything else is kept
// as text. NULL becomes a null cell.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	roster, err := database.LoadTable(ctx, db, "hr_roster_2024")
package database
