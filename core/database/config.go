package database

// Config holds configuration for the scanner database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" required:"true"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" required:"true"`
	// Password is the database password.
	Password string `mapstructure:"password" required:"true"`
	// Name is the database name.
	Name string `mapstructure:"name" required:"true"`
	// TimeoutSeconds bounds connection setup and each read/write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// OrderColumn is the gym column raids are sorted by.
	OrderColumn string `mapstructure:"order_column" default:"raid_end_timestamp"`
}
