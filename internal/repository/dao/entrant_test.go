package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB starts a throwaway Postgres container and returns a migrated
// connection. Runs only when Docker is reachable; use -short to skip.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping(), "Docker is not available")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=registration_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=registration_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func truncateEntrants(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Exec("TRUNCATE entrants RESTART IDENTITY").Error)
}

func insertEntrant(t *testing.T, d *EntrantDAO, entrant Entrant) Entrant {
	t.Helper()

	if entrant.Name == "" {
		entrant.Name = "Test Camper"
	}
	if entrant.Email == "" {
		entrant.Email = fmt.Sprintf("camper-%d@example.org", time.Now().UnixNano())
	}
	if entrant.CCName == "" {
		entrant.CCName = "Test Camper"
		entrant.CCAddress = "1 Example St"
		entrant.CCCity = "Brisbane"
		entrant.CCPostCode = "4000"
		entrant.CCState = "QLD"
		entrant.CCCountry = "Australia"
		entrant.CardToken = "card_test"
		entrant.IPAddress = "203.0.113.7"
	}
	if entrant.CreatedAt.IsZero() {
		entrant.CreatedAt = time.Now().UTC()
	}

	created, err := d.Insert(context.Background(), entrant)
	require.NoError(t, err)

	return created
}

func TestEntrantDAO(t *testing.T) {
	db := setupTestDB(t)
	d := NewEntrantDAO(db)
	ctx := context.Background()

	t.Run("FindByEmail is case-insensitive and returns the earliest row", func(t *testing.T) {
		truncateEntrants(t, db)

		first := insertEntrant(t, d, Entrant{Email: "Camper@Example.org"})
		insertEntrant(t, d, Entrant{Email: "camper@example.org"})

		found, err := d.FindByEmail(ctx, "CAMPER@EXAMPLE.ORG")

		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = d.FindByEmail(ctx, "nobody@example.org")
		require.ErrorIs(t, err, ErrEntrantNotFound)
	})

	t.Run("chosen and unchosen partition the table", func(t *testing.T) {
		truncateEntrants(t, db)

		chosenAt := time.Now().UTC()
		picked := insertEntrant(t, d, Entrant{ChosenAt: &chosenAt})
		waiting := insertEntrant(t, d, Entrant{})

		chosen, err := d.Chosen(ctx)
		require.NoError(t, err)
		require.Len(t, chosen, 1)
		assert.Equal(t, picked.ID, chosen[0].ID)

		unchosen, err := d.Unchosen(ctx)
		require.NoError(t, err)
		require.Len(t, unchosen, 1)
		assert.Equal(t, waiting.ID, unchosen[0].ID)
	})

	t.Run("tent and bunk campers partition the table", func(t *testing.T) {
		truncateEntrants(t, db)

		tent := insertEntrant(t, d, Entrant{Tent: true})
		bunk := insertEntrant(t, d, Entrant{Tent: false})

		tents, err := d.TentCampers(ctx)
		require.NoError(t, err)
		require.Len(t, tents, 1)
		assert.Equal(t, tent.ID, tents[0].ID)

		bunks, err := d.BunkCampers(ctx)
		require.NoError(t, err)
		require.Len(t, bunks, 1)
		assert.Equal(t, bunk.ID, bunks[0].ID)

		count, err := d.CountTentCampers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("deadline scope selects rows created at or after the cutoff", func(t *testing.T) {
		truncateEntrants(t, db)

		deadline := time.Date(2014, 4, 11, 14, 0, 0, 0, time.UTC)
		early := insertEntrant(t, d, Entrant{CreatedAt: deadline.Add(-time.Hour)})
		onTime := insertEntrant(t, d, Entrant{CreatedAt: deadline})
		late := insertEntrant(t, d, Entrant{CreatedAt: deadline.Add(time.Hour)})

		selected, err := d.SubmittedBeforeDeadline(ctx, deadline)
		require.NoError(t, err)

		var ids []uint
		for _, e := range selected {
			ids = append(ids, e.ID)
		}
		assert.ElementsMatch(t, []uint{onTime.ID, late.ID}, ids)
		assert.NotContains(t, ids, early.ID)
	})

	t.Run("SetChargeToken writes once and only once", func(t *testing.T) {
		truncateEntrants(t, db)

		entrant := insertEntrant(t, d, Entrant{})

		uncharged, err := d.Uncharged(ctx)
		require.NoError(t, err)
		require.Len(t, uncharged, 1)

		require.NoError(t, d.SetChargeToken(ctx, entrant.ID, "tok_first"))

		err = d.SetChargeToken(ctx, entrant.ID, "tok_second")
		require.ErrorIs(t, err, ErrAlreadyCharged)

		reloaded, err := d.FindByID(ctx, entrant.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.ChargeToken)
		assert.Equal(t, "tok_first", *reloaded.ChargeToken)

		uncharged, err = d.Uncharged(ctx)
		require.NoError(t, err)
		assert.Empty(t, uncharged)
	})

	t.Run("UpdateExtras writes both fields together", func(t *testing.T) {
		truncateEntrants(t, db)

		entrant := insertEntrant(t, d, Entrant{})

		require.NoError(t, d.UpdateExtras(ctx, entrant.ID, true, "L"))

		reloaded, err := d.FindByID(ctx, entrant.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.WantsBedding)
		assert.True(t, *reloaded.WantsBedding)
		require.NotNil(t, reloaded.TshirtSize)
		assert.Equal(t, "L", *reloaded.TshirtSize)

		require.ErrorIs(t, d.UpdateExtras(ctx, 9999, true, "L"), ErrEntrantNotFound)
	})

	t.Run("Choose and MarkNotified stamp timestamps", func(t *testing.T) {
		truncateEntrants(t, db)

		entrant := insertEntrant(t, d, Entrant{})
		now := time.Now().UTC()

		require.NoError(t, d.Choose(ctx, entrant.ID, now))
		require.NoError(t, d.MarkNotified(ctx, entrant.ID, now))

		reloaded, err := d.FindByID(ctx, entrant.ID)
		require.NoError(t, err)
		assert.NotNil(t, reloaded.ChosenAt)
		assert.NotNil(t, reloaded.ChosenNotifiedAt)

		require.ErrorIs(t, d.Choose(ctx, 9999, now), ErrEntrantNotFound)
		require.ErrorIs(t, d.MarkNotified(ctx, 9999, now), ErrEntrantNotFound)
	})
}
