// Package names resolves numeric pokemon, move and raid level ids to localized
// display names.
//
// Names come from a flat JSON document (pogo-translations locale files) with
// keys such as poke_150, move_94, raid_5 and raid_5_plural. The document is
// fetched with retries and swapped in atomically; lookups fall back to
// deterministic placeholders when an id is unknown.
package names
