package raids

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const selectColumns = "name AS gym_name, " +
	"COALESCE(raid_level, 0) AS raid_level, " +
	"COALESCE(raid_pokemon_id, 0) AS raid_pokemon_id, " +
	"COALESCE(raid_battle_timestamp, 0) AS raid_battle_timestamp, " +
	"raid_end_timestamp, " +
	"COALESCE(raid_pokemon_move_1, 0) AS atk_fast, " +
	"COALESCE(raid_pokemon_move_2, 0) AS atk_charge, " +
	"lat, lon"

// Source reads active raids from an RDM style scanner database.
type Source struct {
	db          *gorm.DB
	orderColumn string
	now         func() time.Time
}

// NewSource creates a raid source ordering results by orderColumn.
// The column must come from a fixed allow list (see config.OrderColumns).
func NewSource(db *gorm.DB, orderColumn string) *Source {
	if orderColumn == "" {
		orderColumn = "raid_end_timestamp"
	}
	return &Source{db: db, orderColumn: orderColumn, now: time.Now}
}

// GetRaids returns raids of the given levels that have not ended yet.
// Eggs are left out unless includeUnknown is set. A non-empty geofence is a
// WKT polygon ring of "lat lon" pairs; only gyms inside it are returned.
func (s *Source) GetRaids(ctx context.Context, levels []int, includeUnknown bool, geofence string, descending bool) ([]Raid, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).
		Table(GymTable).
		Select(selectColumns).
		Where("raid_end_timestamp > ?", s.now().Unix()).
		Where("raid_level IN ?", levels)

	if geofence != "" {
		q = q.Where("ST_CONTAINS(ST_GeomFromText(?), POINT(lat, lon))", "POLYGON(("+geofence+"))")
	}
	if !includeUnknown {
		q = q.Where("raid_pokemon_id <> 0")
	}

	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.orderColumn}, Desc: descending})

	var raids []Raid
	if err := q.Find(&raids).Error; err != nil {
		return nil, fmt.Errorf("query raids: %w", err)
	}
	return raids, nil
}
