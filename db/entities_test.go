// ABOUTME: Tests for entity seeding, lookup and search
// ABOUTME: Seeds the in-memory database from the catalog fixtures
package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	n, err := SeedEntities(db, catalog.Entities())
	require.NoError(t, err)
	require.Equal(t, 6, n)
	return db
}

func TestSeedEntitiesOnlyWhenEmpty(t *testing.T) {
	db := seededDB(t)

	n, err := SeedEntities(db, catalog.Entities())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := CountEntities(db)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestGetEntityRoundTripsVariantFields(t *testing.T) {
	db := seededDB(t)

	person, err := GetEntity(db, 1)
	require.NoError(t, err)
	want, _ := catalog.EntityByID(1)
	assert.Equal(t, want, *person)

	biz, err := GetEntity(db, 103)
	require.NoError(t, err)
	assert.Equal(t, models.EntityBusiness, biz.Type)
	assert.Equal(t, "Buenos Aires", biz.Location)
	assert.Empty(t, biz.Role)
	require.NotNil(t, biz.Coords)
}

func TestGetEntityNotFound(t *testing.T) {
	db := seededDB(t)
	_, err := GetEntity(db, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertEntityWithoutCoords(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, InsertEntity(db, models.Entity{ID: 7, Type: models.EntityPerson, Name: "Ana Lima", Role: "CEO", Company: "Loja"}))
	e, err := GetEntity(db, 7)
	require.NoError(t, err)
	assert.Nil(t, e.Coords)
	assert.Equal(t, "CEO @ Loja", e.Subtitle())

	assert.Error(t, InsertEntity(db, models.Entity{ID: 7, Type: models.EntityPerson, Name: "Dup"}))
}

func TestSearchEntities(t *testing.T) {
	db := seededDB(t)

	tests := []struct {
		term string
		want []int
	}{
		{"são paulo", []int{101, 102}},
		{"NUBANK", []int{2, 102}},
		{"vp sales", []int{1}},
		{"fintech", []int{102}},
		{"zebra", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := SearchEntities(db, tt.term, 0)
			require.NoError(t, err)
			var ids []int
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchEntitiesLimit(t *testing.T) {
	db := seededDB(t)
	got, err := SearchEntities(db, "", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
