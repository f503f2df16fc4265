package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("should build a command without courier", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Accepted, order.ActorChef, nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))
		assert.Equal(t, order.Accepted, cmd.Status())
		assert.Equal(t, order.ActorChef, cmd.Actor())
		assert.Nil(t, cmd.CourierID())
	})

	t.Run("should copy the courier id", func(t *testing.T) {
		courier := kernel.NewUUID()
		cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Prepared, order.ActorChef, &courier)
		require.NoError(t, err)

		courier = kernel.NewUUID()

		require.NotNil(t, cmd.CourierID())
		assert.False(t, courier.IsEqual(*cmd.CourierID()))
	})

	t.Run("should reject unknown status, actor and blank courier", func(t *testing.T) {
		blank := kernel.UUID{}
		_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.UnknownStatus, order.UnknownActor, &blank)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		for _, field := range []string{"order_id", "status", "changed_by", "delivery_person_id"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.ChangeOrderStatusCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
