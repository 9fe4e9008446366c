package order_test

import (
	"testing"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pad Thai Corner", []string{"pad thai", "iced tea"}, 350, "12 Sukhumvit Rd", testNow,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order without rider", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Rider())
		assert.Nil(t, o.AssignedAt())
		assert.Equal(t, int64(350), o.Total())
		assert.Equal(t, []string{"pad thai", "iced tea"}, o.Items())
		assert.Equal(t, testNow, o.CreatedAt())
	})

	t.Run("aggregates every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "", nil, -1, "", testNow)

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "restaurantName")
		assert.Contains(t, err.Error(), "deliveryAddress")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"R", []string{"ok", ""}, 10, "addr", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("items are copied", func(t *testing.T) {
		items := []string{"noodles"}
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"R", items, 10, "addr", testNow)
		require.NoError(t, err)

		items[0] = "changed"
		o.Items()[0] = "changed too"
		assert.Equal(t, []string{"noodles"}, o.Items())
	})
}

func TestOrder_ZeroValueIsInvalid(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Assign(t *testing.T) {
	o := newTestOrder(t)
	riderID := kernel.NewUUID()
	at := testNow.Add(time.Minute)

	require.NoError(t, o.Assign(riderID, at))

	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, o.IsAssignedTo(riderID))
	require.NotNil(t, o.AssignedAt())
	assert.Equal(t, at, *o.AssignedAt())

	err := o.Assign(kernel.NewUUID(), at)
	require.ErrorIs(t, err, errs.ErrStateTransitionIsInvalid)
	assert.True(t, o.IsAssignedTo(riderID), "failed reassignment must not change the rider")

	require.ErrorIs(t, newTestOrder(t).Assign(kernel.UUID{}, at), kernel.ErrUUIDIsNotConstructed)
}

func TestOrder_Advance_FullDelivery(t *testing.T) {
	o := newTestOrder(t)
	riderID := kernel.NewUUID()
	require.NoError(t, o.Assign(riderID, testNow))

	require.NoError(t, o.Advance(riderID, order.ArriveAtRestaurant, testNow.Add(1*time.Minute)))
	assert.Equal(t, order.AtRestaurant, o.Status())
	assert.Nil(t, o.PickedUpAt())

	pickup := testNow.Add(2 * time.Minute)
	require.NoError(t, o.Advance(riderID, order.ConfirmPickup, pickup))
	assert.Equal(t, order.PickedUp, o.Status())
	require.NotNil(t, o.PickedUpAt())
	assert.Equal(t, pickup, *o.PickedUpAt())

	require.NoError(t, o.Advance(riderID, order.ArriveAtCustomer, testNow.Add(3*time.Minute)))
	assert.Equal(t, order.Delivering, o.Status())
	assert.Nil(t, o.DeliveredAt())

	delivered := testNow.Add(4 * time.Minute)
	require.NoError(t, o.Advance(riderID, order.CompleteDelivery, delivered))
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, delivered, *o.DeliveredAt())
}

func TestOrder_Advance_ArriveAtRestaurantChangesOnlyStatus(t *testing.T) {
	o := newTestOrder(t)
	riderID := kernel.NewUUID()
	require.NoError(t, o.Assign(riderID, testNow))
	before := *o

	require.NoError(t, o.Advance(riderID, order.ArriveAtRestaurant, testNow.Add(time.Hour)))

	assert.Equal(t, order.AtRestaurant, o.Status())
	assert.Equal(t, before.AssignedAt(), o.AssignedAt())
	assert.Nil(t, o.PickedUpAt())
	assert.Nil(t, o.DeliveredAt())
	assert.Equal(t, before.Items(), o.Items())
	assert.Equal(t, before.Total(), o.Total())
	assert.True(t, o.IsAssignedTo(riderID))
}

func TestOrder_Advance_Rejections(t *testing.T) {
	t.Run("other rider", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), testNow))

		err := o.Advance(kernel.NewUUID(), order.ArriveAtRestaurant, testNow)

		require.ErrorIs(t, err, order.ErrRiderMismatch)
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("skipping a step", func(t *testing.T) {
		o := newTestOrder(t)
		riderID := kernel.NewUUID()
		require.NoError(t, o.Assign(riderID, testNow))

		err := o.Advance(riderID, order.ConfirmPickup, testNow)

		require.ErrorIs(t, err, errs.ErrStateTransitionIsInvalid)
		assert.Equal(t, order.Assigned, o.Status())
		assert.Nil(t, o.PickedUpAt())
	})

	t.Run("unassigned order", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.Advance(kernel.NewUUID(), order.ArriveAtRestaurant, testNow), order.ErrRiderMismatch)
	})
}

func TestOrder_Terminate(t *testing.T) {
	o := newTestOrder(t)
	riderID := kernel.NewUUID()
	require.NoError(t, o.Assign(riderID, testNow))

	require.NoError(t, o.Terminate(order.Cancelled))

	assert.Equal(t, order.Cancelled, o.Status())
	assert.True(t, o.IsAssignedTo(riderID))
	require.ErrorIs(t, o.Terminate(order.Rejected), errs.ErrStateTransitionIsInvalid)
}

func TestRestoreOrder(t *testing.T) {
	riderID := kernel.NewUUID()
	pickedUp := testNow.Add(time.Minute)
	state := order.State{
		ID:              kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		RestaurantID:    kernel.NewUUID(),
		RestaurantName:  "Som Tam",
		RiderID:         &riderID,
		Items:           []string{"som tam"},
		Total:           120,
		DeliveryAddress: "1 Silom",
		Status:          order.PickedUp,
		CreatedAt:       testNow,
		AssignedAt:      &testNow,
		PickedUpAt:      &pickedUp,
	}

	t.Run("restores consistent state", func(t *testing.T) {
		o, err := order.RestoreOrder(state)

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, o.Status())
		assert.True(t, o.IsAssignedTo(riderID))
		assert.Equal(t, pickedUp, *o.PickedUpAt())
	})

	t.Run("rejects rider on pending order", func(t *testing.T) {
		bad := state
		bad.Status = order.Pending

		_, err := order.RestoreOrder(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects assigned order without rider", func(t *testing.T) {
		bad := state
		bad.RiderID = nil

		_, err := order.RestoreOrder(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("cancelled order may or may not keep a rider", func(t *testing.T) {
		cancelled := state
		cancelled.Status = order.Cancelled
		_, err := order.RestoreOrder(cancelled)
		require.NoError(t, err)

		cancelled.RiderID = nil
		_, err = order.RestoreOrder(cancelled)
		require.NoError(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		bad := state
		bad.Status = order.Unknown

		_, err := order.RestoreOrder(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
