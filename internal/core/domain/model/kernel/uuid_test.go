package kernel_test

import (
	"encoding/json"
	"testing"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should create UUID from valid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUID)

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])

	require.NoError(t, err)
	assert.True(t, original.IsEqual(restored))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID

	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		OrderID  kernel.UUID  `json:"orderId"`
		RiderID  *kernel.UUID `json:"riderId"`
		Optional *kernel.UUID `json:"optional"`
	}
	orderID := kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000")
	riderID := kernel.NewUUID()

	encoded, err := json.Marshal(payload{OrderID: orderID, RiderID: riderID.Ptr()})
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"orderId":"550e8400-e29b-41d4-a716-446655440000"`)
	assert.Contains(t, string(encoded), `"optional":null`)

	var decoded payload
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.OrderID.IsEqual(orderID))
	require.NotNil(t, decoded.RiderID)
	assert.True(t, decoded.RiderID.IsEqual(riderID))
	assert.Nil(t, decoded.Optional)

	err = json.Unmarshal([]byte(`{"orderId":"bogus"}`), &decoded)
	require.Error(t, err)
}

func TestMustUUID_PanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { kernel.MustUUID("bogus") })
}
