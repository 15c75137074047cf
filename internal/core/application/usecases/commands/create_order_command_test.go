package commands_test

import (
	"testing"

	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestNewCreateOrderCommand_Success(t *testing.T) {
	id := kernel.NewUUID()
	shop := mustGeoPoint(t, 51.5007, -0.1246)

	cmd, err := commands.NewCreateOrderCommand(id, "Ada", shop, "12 Bridge St", 10)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, "Ada", cmd.CustomerName())
	sameShop, err := cmd.ShopLocation().IsEqual(shop)
	require.NoError(t, err)
	assert.True(t, sameShop)
	assert.Equal(t, "12 Bridge St", cmd.ShopAddress())
	assert.Equal(t, 10, cmd.PrepTimeMinutes())
}

func TestNewCreateOrderCommand_EmptyAddressIsAllowed(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada", mustGeoPoint(t, 51.5007, -0.1246), "", 10)
	require.NoError(t, err)
	assert.Empty(t, cmd.ShopAddress())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	shop := mustGeoPoint(t, 51.5007, -0.1246)

	tests := []struct {
		name    string
		id      kernel.UUID
		customer string
		prep    int
		wantErr error
	}{
		{"empty order id", kernel.UUID{}, "Ada", 10, nil},
		{"empty customer name", kernel.NewUUID(), "", 10, commands.ErrCustomerNameIsRequired},
		{"zero prep time", kernel.NewUUID(), "Ada", 0, commands.ErrPrepTimeIsInvalid},
		{"negative prep time", kernel.NewUUID(), "Ada", -5, commands.ErrPrepTimeIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tt.id, tt.customer, shop, "addr", tt.prep)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
