package database

import (
	"io/fs"
	"testing"

	"inpatient-registration/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "rs",
		Password: "secret",
		Name:     "rawat_inap",
		SSLMode:  "disable",
		TimeZone: "Asia/Jakarta",
	})

	assert.Equal(t, "host=db user=rs password=secret dbname=rawat_inap port=5432 sslmode=disable TimeZone=Asia/Jakarta", dsn)
}

func TestMigrationsAreEmbeddedInPairs(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
