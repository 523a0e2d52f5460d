package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"raid-status-bot/core/database"
	"raid-status-bot/core/logger"
	"raid-status-bot/core/server"
	"raid-status-bot/core/storage"
	"raid-status-bot/core/telegram"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// OrderColumns lists the gym columns raids may be ordered by.
var OrderColumns = []string{"raid_end_timestamp", "raid_battle_timestamp", "raid_spawn_timestamp"}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// General holds the cycle intervals and the bot token.
	General General `mapstructure:"general"`
	// Database holds configuration for the scanner database connection.
	Database database.Config `mapstructure:"db"`
	// Format holds display settings.
	Format Format `mapstructure:"format"`
	// Templates holds the message templates.
	Templates Templates `mapstructure:"templates"`
	// Telegram holds Bot API client settings.
	Telegram telegram.Config `mapstructure:"telegram"`
	// Names holds the name data source.
	Names Names `mapstructure:"names"`
	// Store holds persistence settings of the message id map.
	Store Store `mapstructure:"store"`
	// Storage holds configuration for the object storage used by the s3 store driver.
	Storage storage.Config `mapstructure:"storage"`
	// Server holds configuration for the optional status HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Channels is built from the [[raidconfig]] tables.
	Channels []Channel `mapstructure:"-"`
}

// Load reads the TOML file at path, overlays a .env file found next to it and
// environment variables (SECTION_KEY), applies defaults and validates the result.
// The returned error lists every missing mandatory option at once.
func Load(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(filepath.Dir(path), ".env"))

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	// Recursively parse struct tags to set default values
	required := bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. GENERAL_TOKEN -> general.token)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var problems []string
	for _, key := range required {
		if !v.IsSet(key) {
			problems = append(problems, key+" is required")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var raw []rawChannel
	if err := v.UnmarshalKey("raidconfig", &raw); err != nil {
		return nil, fmt.Errorf("decode raidconfig: %w", err)
	}
	if len(raw) == 0 {
		problems = append(problems, "at least one [[raidconfig]] is required")
	}
	seen := make(map[ChannelKey]int, len(raw))
	for i, r := range raw {
		ch, err := r.toChannel(i)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if first, dup := seen[ch.Key()]; dup {
			problems = append(problems, fmt.Sprintf("raidconfig[%d] targets %s like raidconfig[%d]", i, ch.Key(), first))
			continue
		}
		seen[ch.Key()] = i
		cfg.Channels = append(cfg.Channels, ch)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid config %s: %s", path, strings.Join(problems, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks value ranges and cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.General.RaidUpdateCycleSeconds <= 0 {
		errs = append(errs, errors.New("general.raidupdate_cycle_in_s must be positive"))
	}
	if c.General.NamesUpdateCycleHours <= 0 {
		errs = append(errs, errors.New("general.pogodata_update_cycle_in_h must be positive"))
	}
	if c.Format.MaxGymNameLength < 3 {
		errs = append(errs, errors.New("format.max_gymname_len must be at least 3"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("format.timezone: %w", err))
	}
	if !contains(OrderColumns, c.Database.OrderColumn) {
		errs = append(errs, fmt.Errorf("db.order_column must be one of %s", strings.Join(OrderColumns, ", ")))
	}
	if c.Telegram.MaxMessageLength <= len([]rune(c.Templates.MsgLimitReached)) {
		errs = append(errs, errors.New("telegram.max_message_length must exceed the length of tmpl_msglimit_reached_msg"))
	}
	switch c.Store.Driver {
	case "file":
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the file driver"))
		}
	case "s3":
		if c.Store.Object == "" || c.Storage.Bucket == "" {
			errs = append(errs, errors.New("store.object and storage.bucket are required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not supported (file, s3)", c.Store.Driver))
	}
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves format.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Format.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Format.Timezone)
}

// CycleInterval is the pause between reconciliation cycles.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.General.RaidUpdateCycleSeconds) * time.Second
}

// NamesInterval is the interval between name data refreshes.
func (c *Config) NamesInterval() time.Duration {
	return time.Duration(c.General.NamesUpdateCycleHours) * time.Hour
}

// NamesURL returns the name data URL for the configured language.
func (c *Config) NamesURL() string {
	return strings.ReplaceAll(c.Names.URL, "{language}", c.Format.Language)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags. Fields tagged required:"true" get no
// default; they are bound to the environment and returned so Load can report them.
func bindValues(v *viper.Viper, iface any, prefix string) []string {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var required []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" || tag == "-" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			required = append(required, bindValues(v, reflect.New(field.Type).Elem().Interface(), key)...)
			continue
		}

		if field.Tag.Get("required") == "true" {
			_ = v.BindEnv(key)
			required = append(required, key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
	return required
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
