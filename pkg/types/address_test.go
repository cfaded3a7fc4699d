package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryAddressNormalize(t *testing.T) {
	room := "  B12 "
	notes := "   "
	addr := &DeliveryAddress{FullName: " Ada ", Phone: " 0801 ", Hostel: " Moremi ", Room: &room, Notes: &notes}

	addr.Normalize()

	assert.Equal(t, "Ada", addr.FullName)
	assert.Equal(t, "0801", addr.Phone)
	assert.Equal(t, "Moremi", addr.Hostel)
	if assert.NotNil(t, addr.Room) {
		assert.Equal(t, "B12", *addr.Room)
	}
	assert.Nil(t, addr.Notes)

	var nilAddr *DeliveryAddress
	nilAddr.Normalize()
}
