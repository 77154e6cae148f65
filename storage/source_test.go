package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSource(t *testing.T) {
	records, err := DemoSource{}.LoadAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2859459814", records[0].AccountID)
	assert.Equal(t, "7386", records[0].PIN)
	assert.True(t, decimal.RequireFromString("10.24").Equal(records[0].Balance))
	// Leading zeros in pins survive: they are opaque strings, not numbers.
	assert.Equal(t, "0075", records[2].PIN)
	assert.True(t, records[2].Balance.IsZero())
}

func TestCSVSource(t *testing.T) {
	writeSeed := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "accounts.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("reads records from file", func(t *testing.T) {
		path := writeSeed(t, "ACCOUNT_ID,PIN,BALANCE\n1,0001,25.50\n2,0002,0\n")

		records, err := NewCSVSource(path).LoadAccounts(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "1", records[0].AccountID)
		assert.True(t, decimal.RequireFromString("25.50").Equal(records[0].Balance))
	})

	t.Run("columns may be reordered", func(t *testing.T) {
		path := writeSeed(t, "BALANCE,ACCOUNT_ID,PIN\n25.50,1,0001\n")

		records, err := NewCSVSource(path).LoadAccounts(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "0001", records[0].PIN)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeSeed(t, "ACCOUNT_ID,BALANCE\n1,25.50\n")

		_, err := NewCSVSource(path).LoadAccounts(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PIN")
	})

	t.Run("non-numeric balance", func(t *testing.T) {
		path := writeSeed(t, "ACCOUNT_ID,PIN,BALANCE\n1,0001,abc\n")

		_, err := NewCSVSource(path).LoadAccounts(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad balance for account 1")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).LoadAccounts(context.Background())

		require.Error(t, err)
	})
}
