// internal/models/shop_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ShopStatus
		to      ShopStatus
		allowed bool
	}{
		{ShopStatusPending, ShopStatusActive, true},
		{ShopStatusSuspended, ShopStatusActive, true},
		{ShopStatusRejected, ShopStatusActive, false},
		{ShopStatusActive, ShopStatusActive, false},

		{ShopStatusPending, ShopStatusRejected, true},
		{ShopStatusActive, ShopStatusRejected, true},
		{ShopStatusSuspended, ShopStatusRejected, true},
		{ShopStatusRejected, ShopStatusRejected, false},

		{ShopStatusPending, ShopStatusSuspended, true},
		{ShopStatusActive, ShopStatusSuspended, true},
		{ShopStatusRejected, ShopStatusSuspended, true},
		{ShopStatusSuspended, ShopStatusSuspended, false},

		{ShopStatusActive, ShopStatusPending, false},
		{ShopStatusRejected, ShopStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestShopApprove(t *testing.T) {
	shop := &Shop{Status: ShopStatusPending}
	location := ShopLocation{Floor: "1", Zone: "A", ShopNumber: "A-12"}

	shop.Approve(location)

	assert.Equal(t, ShopStatusActive, shop.Status)
	assert.True(t, shop.IsActive)
	assert.Equal(t, location, shop.Location)
}

func TestShopReject(t *testing.T) {
	shop := &Shop{Status: ShopStatusPending, IsActive: true}

	shop.Reject()

	assert.Equal(t, ShopStatusRejected, shop.Status)
	assert.False(t, shop.IsActive)
}

func TestShopSuspendKeepsLocation(t *testing.T) {
	location := ShopLocation{Floor: "2", Zone: "B", ShopNumber: "B-03"}
	shop := &Shop{Status: ShopStatusActive, IsActive: true, Location: location}

	shop.Suspend()

	assert.Equal(t, ShopStatusSuspended, shop.Status)
	assert.False(t, shop.IsActive)
	assert.Equal(t, location, shop.Location, "suspension keeps the assigned slot")
}

func TestShopMarkDeleted(t *testing.T) {
	admin := uuid.New()
	shop := &Shop{Status: ShopStatusActive, IsActive: true}

	shop.MarkDeleted(&admin)

	assert.True(t, shop.IsDeleted())
	assert.False(t, shop.IsActive)
	require.NotNil(t, shop.DeletedBy)
	assert.Equal(t, admin, *shop.DeletedBy)
}

func TestUserMarkDeleted(t *testing.T) {
	user := &User{IsActive: true}

	user.MarkDeleted(nil)

	assert.True(t, user.IsDeleted())
	assert.False(t, user.IsActive)
}

func TestUserPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("s3cret-pass"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestUserFullName(t *testing.T) {
	user := &User{Email: "a@b.c"}
	assert.Equal(t, "a@b.c", user.FullName())

	user.FirstName = "Jean"
	user.LastName = "Martin"
	assert.Equal(t, "Jean Martin", user.FullName())
}
