// Package raids reads the currently active raids from the scanner database.
//
// The query targets the gym table of RDM compatible scanners and filters by raid
// level, raid end time, hatch state and an optional WKT geofence evaluated by
// MySQL's ST_CONTAINS.
package raids
