package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealforge/internal/models"
	"github.com/pageza/mealforge/internal/testdb"
)

func TestResolveOrCreateIsCaseInsensitive(t *testing.T) {
	db := testdb.Setup(t)
	svc := NewIngredientService()

	first, err := svc.ResolveOrCreate(db, "Tomato")
	require.NoError(t, err)

	second, err := svc.ResolveOrCreate(db, "tomato")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	third, err := svc.ResolveOrCreate(db, "TOMATO")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The original casing is the canonical name.
	assert.Equal(t, "Tomato", second.Name)
}

func TestResolveOrCreateTrimsName(t *testing.T) {
	db := testdb.Setup(t)
	svc := NewIngredientService()

	created, err := svc.ResolveOrCreate(db, "  basil  ")
	require.NoError(t, err)
	assert.Equal(t, "basil", created.Name)
}

func TestResolveOrCreateRejectsEmptyName(t *testing.T) {
	db := testdb.Setup(t)
	svc := NewIngredientService()

	_, err := svc.ResolveOrCreate(db, "   ")
	assert.Error(t, err)
}
