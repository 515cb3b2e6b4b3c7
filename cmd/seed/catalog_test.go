package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borealis-store/borealis-backend/pkg/db/dbtest"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
)

func TestSeedCatalogResetsExistingProducts(t *testing.T) {
	client, conn := dbtest.Client(t)
	dbtest.SeedProduct(t, conn, "Old Stock", "$1.00", 1)

	count, err := seedCatalog(context.Background(), client, true)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var products []models.Product
	require.NoError(t, conn.Order("name ASC").Find(&products).Error)
	require.Len(t, products, 3)
	assert.Equal(t, "Edison Lamp", products[0].Name)
	assert.Equal(t, "$120.00", products[0].Price)
	assert.Equal(t, 2, products[0].CountInStock)
	assert.Equal(t, "Terra Vase", products[2].Name)
	assert.Zero(t, products[2].CountInStock)
}

func TestSeedCatalogAppendsWithoutReset(t *testing.T) {
	client, conn := dbtest.Client(t)
	dbtest.SeedProduct(t, conn, "Old Stock", "$1.00", 1)

	_, err := seedCatalog(context.Background(), client, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
