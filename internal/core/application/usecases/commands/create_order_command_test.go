package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLineItems() []commands.LineItemInput {
	return []commands.LineItemInput{
		{ProductID: kernel.NewUUID(), Quantity: 2, UnitPriceCents: 1024},
		{ProductID: kernel.NewUUID(), Quantity: 1, UnitPriceCents: 2000},
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := validLineItems()

	cmd, err := commands.NewCreateOrderCommand(
		id, customerID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		4048, 800, 4848, "leave at the door", nil, items)
	require.NoError(t, err)

	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, int64(4048), cmd.SubtotalCents())
	assert.Equal(t, int64(800), cmd.DeliveryFeeCents())
	assert.Equal(t, int64(4848), cmd.TotalCents())
	assert.Equal(t, "leave at the door", cmd.Notes())
	assert.Len(t, cmd.Items(), 2)
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(
		invalidID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		4048, 800, 4848, "", nil, validLineItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCustomerID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		4048, 800, 4848, "", nil, validLineItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NoLineItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		4048, 800, 4848, "", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLineItemsAreRequired)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
