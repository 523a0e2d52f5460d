package raids

// Raid is one active raid as read from the scanner's gym table.
type Raid struct {
	// GymName is nil when the scanner has not resolved the gym yet.
	GymName *string `gorm:"column:gym_name"`
	Level   int     `gorm:"column:raid_level"`
	// PokemonID is 0 while the raid is still an egg.
	PokemonID int `gorm:"column:raid_pokemon_id"`
	// BattleStart and End are unix timestamps in seconds.
	BattleStart int64   `gorm:"column:raid_battle_timestamp"`
	End         int64   `gorm:"column:raid_end_timestamp"`
	MoveFast    int     `gorm:"column:atk_fast"`
	MoveCharge  int     `gorm:"column:atk_charge"`
	Lat         float64 `gorm:"column:lat"`
	Lon         float64 `gorm:"column:lon"`
}

// IsEgg reports whether the raid boss has not hatched yet.
func (r Raid) IsEgg() bool {
	return r.PokemonID == 0
}
