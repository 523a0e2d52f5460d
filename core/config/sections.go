package config

// General holds the cycle settings and the bot credential.
type General struct {
	// Token is the Telegram bot token.
	Token string `mapstructure:"token" required:"true"`
	// RaidUpdateCycleSeconds is the pause between two reconciliation cycles.
	RaidUpdateCycleSeconds int `mapstructure:"raidupdate_cycle_in_s" default:"60"`
	// NamesUpdateCycleHours is the interval between name data refreshes.
	NamesUpdateCycleHours int `mapstructure:"pogodata_update_cycle_in_h" default:"24"`
}

// Format holds display settings shared by all channels.
type Format struct {
	Language         string `mapstructure:"language" default:"en"`
	MaxGymNameLength int    `mapstructure:"max_gymname_len" default:"27"`
	// TimeFormat is a strftime pattern used for raid start and end times.
	TimeFormat       string `mapstructure:"time_format" default:"%H:%M"`
	UnknownGymName   string `mapstructure:"unknown_gym_name" default:"N/A"`
	FooterTimeFormat string `mapstructure:"footer_time_format" default:"%d.%m.%y %H:%M"`
	// Timezone is an IANA zone name; empty uses the local zone.
	Timezone string `mapstructure:"timezone" default:""`
}

// Templates holds the message templates. Placeholders use $name or ${name}.
type Templates struct {
	MsgLimitReached string `mapstructure:"tmpl_msglimit_reached_msg" default:"..."`
	NoRaid          string `mapstructure:"tmpl_no_raid_msg" default:"No raids"`
	Footer          string `mapstructure:"tmpl_footer_msg" default:"⏱ ${timestamp}"`
	GroupedTitle    string `mapstructure:"tmpl_grouped_title_msg" required:"true"`
	Raid            string `mapstructure:"tmpl_raid_msg" required:"true"`
	RaidEgg         string `mapstructure:"tmpl_raidegg_msg" required:"true"`
}

// Names configures where localized pokemon, move and raid names come from.
type Names struct {
	// URL may contain {language}, replaced with format.language.
	URL string `mapstructure:"url" default:"https://raw.githubusercontent.com/WatWowMap/pogo-translations/master/static/locales/{language}.json"`
	// Attempts is the number of fetch attempts per refresh.
	Attempts int `mapstructure:"attempts" default:"3"`
}

// Store configures persistence of the message id map.
type Store struct {
	// Driver is "file" or "s3".
	Driver string `mapstructure:"driver" default:"file"`
	// Path is the state file of the file driver.
	Path string `mapstructure:"path" default:".msgid_cache"`
	// Object is the object name of the s3 driver inside storage.bucket.
	Object string `mapstructure:"object" default:"msgid_cache.json"`
}
