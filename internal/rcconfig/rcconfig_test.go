package rcconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FillDefaults(t *testing.T) {
	cfg := Config{}.FillDefaults()
	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, DatabaseInMemory, cfg.DB.Type)
	assert.Equal(t, 20, cfg.DefaultScanRange)
	assert.Equal(t, 100000, cfg.DefaultStepBudget)
	require.NoError(t, cfg.Validate())
}

func Test_Validate_rejectsShortSecret(t *testing.T) {
	cfg := Config{TokenSecret: "short", DB: Database{Type: DatabaseInMemory}, DefaultScanRange: 1, DefaultStepBudget: 1}
	assert.Error(t, cfg.Validate())
}

func Test_Database_Validate_sqliteNeedsDataDir(t *testing.T) {
	db := Database{Type: DatabaseSQLite}
	assert.Error(t, db.Validate())

	db.DataDir = "/tmp/primrecd"
	assert.NoError(t, db.Validate())
}

func Test_ParseDBType(t *testing.T) {
	typ, err := ParseDBType("SQLite")
	require.NoError(t, err)
	assert.Equal(t, DatabaseSQLite, typ)

	_, err = ParseDBType("postgres")
	assert.Error(t, err)
}
