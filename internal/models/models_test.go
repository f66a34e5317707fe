package models

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := newIDAt(now)

	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-z]{9}$`), id)
	assert.NotEqual(t, NewID(), NewID())
}

func TestPropertyApply(t *testing.T) {
	p := &Property{Name: "Old", City: "Pune", TotalRooms: 2}
	name := "New"
	rooms := 10
	p.Apply(PropertyPatch{Name: &name, TotalRooms: &rooms})

	assert.Equal(t, "New", p.Name)
	assert.Equal(t, "Pune", p.City)
	assert.Equal(t, 10, p.TotalRooms)
}

func TestRoomCloneIsDeep(t *testing.T) {
	floor := 2
	r := &Room{Number: "101", Floor: &floor, Amenities: []string{"AC"}, RentAmount: decimal.NewFromInt(5000)}
	c := r.Clone()
	*c.Floor = 3
	c.Amenities[0] = "WiFi"

	assert.Equal(t, 2, *r.Floor)
	assert.Equal(t, "AC", r.Amenities[0])
}

func TestTenantApplyAndClone(t *testing.T) {
	tn := &Tenant{FirstName: "Asha", LastName: "Rao", IsActive: true}
	inactive := false
	out := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tn.Apply(TenantPatch{IsActive: &inactive, MoveOutDate: &out, AdditionalMembers: []HouseholdMember{{ID: "m1", Name: "Ravi"}}})

	require.NotNil(t, tn.MoveOutDate)
	assert.False(t, tn.IsActive)
	assert.Equal(t, "Asha Rao", tn.FullName())

	c := tn.Clone()
	c.AdditionalMembers[0].Name = "Changed"
	assert.Equal(t, "Ravi", tn.AdditionalMembers[0].Name)
}

func TestPaymentStatusHelpers(t *testing.T) {
	p := &RentPayment{Status: PaymentStatusOverdue}
	assert.True(t, p.IsOutstanding())
	assert.False(t, p.IsPaid())
	assert.True(t, PaymentStatusPaid.Valid())
	assert.False(t, PaymentStatus("late").Valid())
	assert.True(t, PropertyTypeCondo.Valid())
	assert.False(t, RoomType("suite").Valid())
}

func TestMemberCapMatchesTags(t *testing.T) {
	want := fmt.Sprintf("max=%d,dive", MaxAdditionalMembers)
	for _, typ := range []reflect.Type{reflect.TypeOf(Tenant{}), reflect.TypeOf(TenantPatch{})} {
		f, ok := typ.FieldByName("AdditionalMembers")
		require.True(t, ok)
		assert.Equal(t, want, f.Tag.Get("validate"), typ.Name())
	}
}
