// Package render builds the status message text of a channel.
//
// A message consists of raid lines, optionally grouped under one header per raid
// level, followed by an empty line and a "last updated" footer. Channels without
// raids show the no-raids template instead of lines.
//
// Templates use $name or ${name} placeholders:
//
//	header:      raidlvl_name (plural), raidlvl_num, raidlvl_emoji
//	egg line:    raidlvl_name, raidlvl_num, raidlvl_emoji, time_start, time_end,
//	             gym_name, gmaps_url, lat, lon
//	raid line:   all egg placeholders plus pokemon_name, atk_fast, atk_charge
//	footer:      timestamp
//
// Unknown placeholders are kept as written. Times use strftime patterns.
package render
