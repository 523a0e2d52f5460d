package telegram

// Config holds configuration for the Telegram Bot API client.
// The bot token itself lives in [general] next to the cycle settings.
type Config struct {
	// BaseURL is the Bot API endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://api.telegram.org"`
	// TimeoutSeconds bounds every Bot API request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxMessageLength is the length (in characters) messages are trimmed to.
	MaxMessageLength int `mapstructure:"max_message_length" default:"3000"`
	// ParseMode is passed with every sent or edited message.
	ParseMode string `mapstructure:"parse_mode" default:"HTML"`
}
