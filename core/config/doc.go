// Package config provides configuration management for the raid status bot.
//
// It utilizes Viper for loading a TOML configuration file, with a .env file next
// to it and environment variables layered on top (GENERAL_TOKEN overrides
// general.token).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - General: cycle intervals and bot token
//   - Database: scanner MySQL connection details and sort column
//   - Format, Templates: message rendering
//   - Telegram: Bot API client
//   - Names: localized name data source
//   - Store, Storage: message id persistence (file or S3/MinIO)
//   - Server: optional status HTTP server
//   - Log: logging level, format and file
//
// Defaults come from `default` struct tags. Options tagged `required` have no
// default and Load fails, naming all of them, when any is missing.
//
// Each [[raidconfig]] table becomes one typed Channel. Its optional fields are
// defaulted once at load time:
//
//	message_thread_id   0
//	eggs                true
//	raidlevel_grouping  true
//	geofence            ""
//	order_time_reverse  false
//	pin_msg             true
//
// # Usage
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ch := range cfg.Channels {
//	    fmt.Println(ch.Key())
//	}
package config
