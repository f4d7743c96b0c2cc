package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairconnect/internal/domain/entity"
	"hairconnect/pkg/errors"
)

func TestListingUseCaseList(t *testing.T) {
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{
		"vip": {
			"fullName": "Amani", "membershipPlan": "VIP", "isPaid": true,
			"townId": int64(1), "estateId": int64(101), "subEstateId": int64(1),
			"services": []interface{}{`["Braids","Weaves"]`},
			"createdAt": "2024-02-01T10:00:00Z",
		},
		"regular": {
			"fullName": "Baraka", "membershipPlan": "REGULAR", "isPaid": true,
			"townId": "2", "estateId": "201", "subEstateId": "1",
			"createdAt": int64(1717236000000),
		},
		"unpaid": {
			"fullName": "Chebet", "membershipPlan": "VIP", "isPaid": false,
		},
	})

	uc := NewListingUseCase(repo, newLocations(t), nil)

	t.Run("ranks paid profiles with locations", func(t *testing.T) {
		list, err := uc.List(context.Background(), ListingFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)

		assert.Equal(t, "vip", list[0].ID)
		assert.Equal(t, "Eldoret", list[0].Town.Name)
		assert.Equal(t, []string{"Braids", "Weaves"}, list[0].Services)

		assert.Equal(t, "regular", list[1].ID)
		assert.Equal(t, "Nairobi", list[1].Town.Name)
	})

	t.Run("filters by town", func(t *testing.T) {
		list, err := uc.List(context.Background(), ListingFilter{TownID: intPtr(2)})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "regular", list[0].ID)
	})

	t.Run("filters by service", func(t *testing.T) {
		list, err := uc.List(context.Background(), ListingFilter{Services: []string{"Weaves"}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "vip", list[0].ID)
	})
}

func TestListingUseCaseStoreFailure(t *testing.T) {
	uc := NewListingUseCase(failingHairdresserRepo{}, newLocations(t), nil)

	list, err := uc.List(context.Background(), ListingFilter{})
	assert.Nil(t, list)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "LISTINGS_FETCH_FAILED"))
	assert.Equal(t, 500, errors.StatusOf(err))
}

func TestListingUnknownLocationPlaceholders(t *testing.T) {
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{
		"lost": {"fullName": "Dan", "isPaid": true, "townId": int64(99), "estateId": int64(9), "subEstateId": int64(9)},
	})

	list, err := NewListingUseCase(repo, newLocations(t), nil).List(context.Background(), ListingFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 99, list[0].Town.ID)
	assert.Equal(t, entity.UnknownTownName, list[0].Town.Name)
	assert.Equal(t, entity.UnknownEstateName, list[0].Estate.Name)
}
