package raids

import (
	"fmt"

	"raid-status-bot/core/database"

	"gorm.io/gorm"
)

// GymTable is the scanner table raids are read from.
const GymTable = "gym"

// requiredColumns are the gym columns GetRaids reads.
var requiredColumns = []string{
	"name",
	"lat",
	"lon",
	"raid_level",
	"raid_pokemon_id",
	"raid_battle_timestamp",
	"raid_end_timestamp",
	"raid_pokemon_move_1",
	"raid_pokemon_move_2",
}

// SchemaReport is the result of a scanner schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
}

// CheckSchema verifies that the gym table carries every column the raid
// query and the configured order column rely on.
func CheckSchema(db *gorm.DB, orderColumn string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	cols, err := database.GetTableColumns(db, GymTable)
	if err != nil {
		return nil, err
	}

	actual := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		actual[col.Field] = struct{}{}
	}

	expected := requiredColumns
	if orderColumn != "" {
		expected = append(append([]string{}, requiredColumns...), orderColumn)
	}

	report := &SchemaReport{Table: GymTable, Matched: true, MissingColumns: []string{}}
	seen := make(map[string]struct{}, len(expected))
	for _, name := range expected {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := actual[name]; !ok {
			report.MissingColumns = append(report.MissingColumns, name)
			report.Matched = false
		}
	}
	return report, nil
}
