package notification_test

import (
	"testing"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func newTestNotification(t *testing.T, riderID kernel.UUID) *notification.Notification {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pad Thai Corner", []string{"pad thai x2"}, 350, "12 Sukhumvit Rd", testNow)
	require.NoError(t, err)

	n, err := notification.NewNotification(kernel.NewUUID(), o, riderID, testNow)
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	riderID := kernel.NewUUID()
	n := newTestNotification(t, riderID)

	require.NoError(t, n.Validate())
	assert.True(t, n.RiderID().IsEqual(riderID))
	assert.Equal(t, "Pad Thai Corner", n.RestaurantName())
	assert.Equal(t, "12 Sukhumvit Rd", n.CustomerAddress())
	assert.Equal(t, int64(350), n.Total())
	assert.True(t, n.IsPending())
	assert.False(t, n.IsRead())
	assert.Nil(t, n.IsAccepted())
	assert.Equal(t, testNow, n.CreatedAt())
}

func TestNewNotification_RequiresConstructedOrder(t *testing.T) {
	_, err := notification.NewNotification(kernel.NewUUID(), &order.Order{}, kernel.NewUUID(), testNow)

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestNotification_Accept(t *testing.T) {
	riderID := kernel.NewUUID()
	n := newTestNotification(t, riderID)

	require.NoError(t, n.Accept(riderID))

	require.NotNil(t, n.IsAccepted())
	assert.True(t, *n.IsAccepted())
	assert.True(t, n.IsRead())
	assert.False(t, n.IsPending())
	assert.True(t, n.IsDecided())
}

func TestNotification_Decline(t *testing.T) {
	riderID := kernel.NewUUID()
	n := newTestNotification(t, riderID)

	require.NoError(t, n.Decline(riderID))

	require.NotNil(t, n.IsAccepted())
	assert.False(t, *n.IsAccepted())
	assert.True(t, n.IsRead())
}

func TestNotification_DecisionIsFinal(t *testing.T) {
	riderID := kernel.NewUUID()
	n := newTestNotification(t, riderID)
	require.NoError(t, n.Decline(riderID))

	require.ErrorIs(t, n.Accept(riderID), notification.ErrNotificationAlreadyDecided)
	require.ErrorIs(t, n.Decline(riderID), notification.ErrNotificationAlreadyDecided)
	assert.False(t, *n.IsAccepted())
}

func TestNotification_WrongRider(t *testing.T) {
	n := newTestNotification(t, kernel.NewUUID())

	require.ErrorIs(t, n.Accept(kernel.NewUUID()), notification.ErrWrongRider)
	assert.True(t, n.IsPending())
}

func TestNotification_Withdraw(t *testing.T) {
	t.Run("closes a pending offer without a decision", func(t *testing.T) {
		riderID := kernel.NewUUID()
		n := newTestNotification(t, riderID)

		n.Withdraw()

		assert.True(t, n.IsRead())
		assert.Nil(t, n.IsAccepted())
		assert.False(t, n.IsPending())
		require.ErrorIs(t, n.Accept(riderID), notification.ErrNotificationWithdrawn)
	})

	t.Run("leaves decided offers alone", func(t *testing.T) {
		riderID := kernel.NewUUID()
		n := newTestNotification(t, riderID)
		require.NoError(t, n.Accept(riderID))

		n.Withdraw()

		assert.True(t, *n.IsAccepted())
	})
}

func TestNotification_IsAcceptedReturnsCopy(t *testing.T) {
	riderID := kernel.NewUUID()
	n := newTestNotification(t, riderID)
	require.NoError(t, n.Accept(riderID))

	*n.IsAccepted() = false

	assert.True(t, *n.IsAccepted())
}

func TestRestoreNotification(t *testing.T) {
	accepted := true
	base := notification.State{
		ID:              kernel.NewUUID(),
		OrderID:         kernel.NewUUID(),
		RiderID:         kernel.NewUUID(),
		RestaurantName:  "Som Tam Nua",
		CustomerAddress: "5 Silom Rd",
		Total:           120,
		IsRead:          true,
		IsAccepted:      &accepted,
		CreatedAt:       testNow,
	}

	n, err := notification.RestoreNotification(base)
	require.NoError(t, err)
	assert.True(t, n.IsDecided())

	unread := base
	unread.IsRead = false
	_, err = notification.RestoreNotification(unread)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	noRider := base
	noRider.RiderID = kernel.UUID{}
	_, err = notification.RestoreNotification(noRider)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
