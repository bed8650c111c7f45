package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplyTransitionCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, order.StatusProcessing, actorID, order.RoleAdmin, "", "payment confirmed")
	require.NoError(t, err)

	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.StatusProcessing, cmd.Next())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, order.RoleAdmin, cmd.ActorRole())
	assert.Empty(t, cmd.Reason())
	assert.Equal(t, "payment confirmed", cmd.Description())
	assert.NoError(t, cmd.Validate())
}

func TestNewApplyTransitionCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.UUID{}, order.StatusProcessing, kernel.NewUUID(), order.RoleAdmin, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewApplyTransitionCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), order.StatusUnknown, kernel.NewUUID(), order.RoleAdmin, "", "")
	require.Error(t, err)
}

func TestNewApplyTransitionCommand_InvalidRole(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), order.StatusProcessing, kernel.NewUUID(), order.RoleUnknown, "", "")
	require.Error(t, err)
}

func TestApplyTransitionCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ApplyTransitionCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrApplyTransitionCommandIsNotConstructed)
}
