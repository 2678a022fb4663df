// internal/services/shop_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centremall/mall-backend/internal/models"
)

func TestUpdateShopRequestCarriesAdministrativeOverrides(t *testing.T) {
	payload := `{"name":"Chez Inès","category":"3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f","status":"suspended","isActive":false,"location":{"floor":"2","zone":"B","shopNumber":"21"}}`

	var req UpdateShopRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.NotNil(t, req.Status)
	assert.Equal(t, models.ShopStatusSuspended, *req.Status)
	require.NotNil(t, req.IsActive)
	assert.False(t, *req.IsActive)
	require.NotNil(t, req.Location)
	assert.Equal(t, "2", req.Location.Floor)
	assert.True(t, req.HasLifecycleOverride())
}

func TestUpdateShopRequestWithoutOverrides(t *testing.T) {
	payload := `{"name":"Chez Inès","category":"3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f","description":"Prêt-à-porter"}`

	var req UpdateShopRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Nil(t, req.Status)
	assert.Nil(t, req.IsActive)
	assert.Nil(t, req.Location)
	assert.False(t, req.HasLifecycleOverride())
}

func TestCreateShopRequestStatus(t *testing.T) {
	payload := `{"userId":"3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f","name":"Chez Inès","category":"3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f","status":"active"}`

	var req CreateShopRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Equal(t, models.ShopStatusActive, req.Status)

	var empty CreateShopRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Chez Inès"}`), &empty))
	assert.Empty(t, empty.Status)
}
