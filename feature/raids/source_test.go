package raids

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var raidColumns = []string{
	"gym_name", "raid_level", "raid_pokemon_id", "raid_battle_timestamp", "raid_end_timestamp",
	"atk_fast", "atk_charge", "lat", "lon",
}

func fixedSource(db *gorm.DB, column string) *Source {
	s := NewSource(db, column)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestGetRaids(t *testing.T) {
	t.Run("Active Raids Ascending", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows(raidColumns).
			AddRow("Central Park", 1, 0, 1700000600, 1700003300, 0, 0, 40.785091, -73.968285).
			AddRow(nil, 5, 150, 1700000000, 1700002700, 226, 94, 52.5, 13.4)

		mock.ExpectQuery(`SELECT name AS gym_name, (.+) FROM ` + "`gym`" +
			` WHERE raid_end_timestamp > \? AND raid_level IN \(\?,\?\) ORDER BY ` + "`raid_end_timestamp`$").
			WithArgs(int64(1700000000), 1, 5).
			WillReturnRows(rows)

		raids, err := fixedSource(db, "").GetRaids(context.Background(), []int{1, 5}, true, "", false)
		require.NoError(t, err)
		require.Len(t, raids, 2)

		require.NotNil(t, raids[0].GymName)
		assert.Equal(t, "Central Park", *raids[0].GymName)
		assert.True(t, raids[0].IsEgg())
		assert.Equal(t, int64(1700003300), raids[0].End)
		assert.InDelta(t, 40.785091, raids[0].Lat, 1e-9)

		assert.Nil(t, raids[1].GymName)
		assert.False(t, raids[1].IsEgg())
		assert.Equal(t, 226, raids[1].MoveFast)
		assert.Equal(t, 94, raids[1].MoveCharge)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Hatched Only Inside Geofence Descending", func(t *testing.T) {
		db, mock := setupMockDB(t)
		fence := "52.1 13.1, 52.2 13.2, 52.1 13.3, 52.1 13.1"

		mock.ExpectQuery(regexp.QuoteMeta(
			"WHERE raid_end_timestamp > ? AND raid_level IN (?) AND ST_CONTAINS(ST_GeomFromText(?), POINT(lat, lon)) AND raid_pokemon_id <> 0 ORDER BY `raid_battle_timestamp` DESC")).
			WithArgs(int64(1700000000), 5, "POLYGON(("+fence+"))").
			WillReturnRows(sqlmock.NewRows(raidColumns))

		raids, err := fixedSource(db, "raid_battle_timestamp").GetRaids(context.Background(), []int{5}, false, fence, true)
		require.NoError(t, err)
		assert.Empty(t, raids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM `gym`").WillReturnError(errors.New("connection lost"))

		raids, err := fixedSource(db, "").GetRaids(context.Background(), []int{5}, true, "", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query raids")
		assert.Nil(t, raids)
	})

	t.Run("No Levels Skips Query", func(t *testing.T) {
		db, mock := setupMockDB(t)

		raids, err := fixedSource(db, "").GetRaids(context.Background(), nil, true, "", false)
		require.NoError(t, err)
		assert.Nil(t, raids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
