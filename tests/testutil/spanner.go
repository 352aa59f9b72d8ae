package testutil

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/models/m_outbox"
	"github.com/light-bringer/menucat-service/internal/models/m_price_history"
)

// DefaultTestSpannerDB is used when SPANNER_TEST_DATABASE is unset.
const DefaultTestSpannerDB = "projects/test-project/instances/test-instance/databases/menu-catalog-test"

// SetupSpannerTest connects to the test database and empties it. Tests are
// skipped unless an emulator host or an explicit test database is configured.
// The returned func empties the database again and closes the client.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	db := os.Getenv("SPANNER_TEST_DATABASE")
	if db == "" {
		if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
			t.Skip("SPANNER_EMULATOR_HOST not set; skipping Spanner test")
		}
		db = DefaultTestSpannerDB
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, db)
	require.NoError(t, err, "failed to create Spanner client for %s", db)

	ping := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	_, err = ping.Next()
	ping.Stop()
	require.NoError(t, err, "Spanner at %s is not responding", db)

	CleanDatabase(t, client)
	return client, func() {
		CleanDatabase(t, client)
		client.Close()
	}
}

// CleanDatabase deletes every row the catalog writes. Reviews go with their
// menu item through the interleave cascade.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_price_history.TableName, spanner.AllKeys()),
		spanner.Delete(m_menu_item.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount checks the number of rows in table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, want int64) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{SQL: "SELECT COUNT(*) FROM " + table})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to count rows in %s", table)

	var got int64
	require.NoError(t, row.Columns(&got))
	require.Equal(t, want, got, "unexpected row count in %s", table)
}
