// Package database handles the connection to the raid scanner database.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. The scanner schema itself
// (the gym table of an RDM-style scanner) is only known to feature/raids.
//
// # Connect
//
// Connect opens the pool lazily and applies connection/read/write timeouts through the DSN.
// A database that is down at startup is not an error; Ping reports it so the caller can log it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Invalid database settings", err)
//	}
//	if err := database.Ping(ctx, db, cfg.Database); err != nil {
//	    logger.Warn("Database unreachable", zap.Error(err))
//	}
package database
