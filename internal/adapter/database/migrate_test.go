package database_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/require"

	. "goalsapp/pkg/test"

	"goalsapp/internal/adapter/database"
	"goalsapp/pkg/config"
)

func TestSQLiteMigrations(t *testing.T) {
	RegisterTestingT(t)

	db := InitTestDB()
	defer db.Close()

	version, dirty, err := database.SchemaVersion(db.DB.DB, config.DriverSQLite)
	require.NoError(t, err)
	Expect(version).To(Equal(uint(2)))
	Expect(dirty).To(BeFalse())

	Expect(database.RunMigrations(db.DB.DB, config.DriverSQLite)).To(Succeed())

	var tables []string
	err = db.SelectContext(context.Background(), &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('goals', 'tasks') ORDER BY name")
	require.NoError(t, err)
	Expect(tables).To(Equal([]string{"goals", "tasks"}))
}

func TestSQLiteForeignKeysEnabled(t *testing.T) {
	RegisterTestingT(t)

	db := InitTestDB()
	defer db.Close()

	var enabled int
	require.NoError(t, db.GetContext(context.Background(), &enabled, "PRAGMA foreign_keys"))
	Expect(enabled).To(Equal(1))
}

func TestSchemaVersion_UnknownDialect(t *testing.T) {
	RegisterTestingT(t)

	db := InitTestDB()
	defer db.Close()

	_, _, err := database.SchemaVersion(db.DB.DB, "oracle")
	Expect(err).To(HaveOccurred())
}
