package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/rentbook/internal/models"
)

func fieldNames(err error) []string {
	var names []string
	for _, f := range Fields(err) {
		names = append(names, f.Field)
	}
	return names
}

func validProperty() *models.Property {
	return &models.Property{
		Name: "Lakeview", Address: "1 Lake Rd", City: "Pune", State: "MH", ZipCode: "411001",
		Type: models.PropertyTypeApartment, TotalRooms: 4,
	}
}

func TestValidatePropertyAccepts(t *testing.T) {
	empty := ""
	p := validProperty()
	p.Email = &empty
	assert.NoError(t, ValidateProperty(p))
}

func TestValidatePropertyReportsEveryField(t *testing.T) {
	bad := "not-an-email"
	p := &models.Property{Type: "castle", Email: &bad}
	err := ValidateProperty(p)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ElementsMatch(t,
		[]string{"name", "address", "city", "state", "zip_code", "type", "total_rooms", "email"},
		fieldNames(err))
}

func TestValidatePropertyPatchChecksPresentFieldsOnly(t *testing.T) {
	assert.NoError(t, ValidatePropertyPatch(models.PropertyPatch{}))
	zero := 0
	err := ValidatePropertyPatch(models.PropertyPatch{TotalRooms: &zero})
	assert.Equal(t, []string{"total_rooms"}, fieldNames(err))
}

func TestValidateRoom(t *testing.T) {
	r := &models.Room{PropertyID: "p1", Number: "101", Type: models.RoomTypeSingle, Status: models.RoomStatusAvailable, RentAmount: decimal.NewFromInt(5000)}
	assert.NoError(t, ValidateRoom(r))

	r.RentAmount = decimal.Zero
	r.Status = "vacant"
	assert.ElementsMatch(t, []string{"rent_amount", "status"}, fieldNames(ValidateRoom(r)))
}

func TestValidateTenantPhone(t *testing.T) {
	tn := &models.Tenant{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210",
		RoomID: "r1", MoveInDate: time.Now(),
	}
	assert.NoError(t, ValidateTenant(tn))

	for _, phone := range []string{"5876543210", "987654321", "98765432101", "98765abcde"} {
		tn.Phone = phone
		assert.Equal(t, []string{"phone"}, fieldNames(ValidateTenant(tn)), phone)
	}
}

func TestValidateTenantMemberLimit(t *testing.T) {
	tn := &models.Tenant{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210",
		RoomID: "r1", MoveInDate: time.Now(),
	}
	for i := 0; i < 6; i++ {
		tn.AdditionalMembers = append(tn.AdditionalMembers, models.HouseholdMember{Name: "M", Relation: "sibling"})
	}
	assert.Contains(t, fieldNames(ValidateTenant(tn)), "additional_members")
}

func TestValidateMemberAndDocument(t *testing.T) {
	err := ValidateMember(&models.HouseholdMember{Name: "Ravi"})
	assert.Equal(t, []string{"relation"}, fieldNames(err))

	err = ValidateDocument(&models.Document{Type: "passport", Name: "ID", URL: "data:x"})
	assert.Equal(t, []string{"type"}, fieldNames(err))
}

func TestValidatePayment(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	notes := string(long)
	p := &models.RentPayment{TenantID: "t1", Amount: decimal.NewFromInt(-5), Status: models.PaymentStatusPending, Notes: &notes}
	assert.ElementsMatch(t, []string{"amount", "notes"}, fieldNames(ValidatePayment(p)))
}

func TestContactRules(t *testing.T) {
	tn := &models.Tenant{
		FirstName: "Asha", LastName: "Rao", Email: "User <user@example.com>", Phone: "6000000000",
		RoomID: "r1", MoveInDate: time.Now(),
	}
	assert.Equal(t, []string{"email"}, fieldNames(ValidateTenant(tn)))

	tn.Email = ""
	tn.Phone = "+916000000000"
	assert.ElementsMatch(t, []string{"email", "phone"}, fieldNames(ValidateTenant(tn)))

	blank := ""
	bad := "12345"
	assert.NoError(t, ValidateMember(&models.HouseholdMember{Name: "Ravi", Relation: "son", Phone: &blank}))
	assert.Equal(t, []string{"phone"}, fieldNames(ValidateMember(&models.HouseholdMember{Name: "Ravi", Relation: "son", Phone: &bad})))
}

func TestNestedFieldPaths(t *testing.T) {
	tn := &models.Tenant{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210",
		RoomID: "r1", MoveInDate: time.Now(),
		AdditionalMembers: []models.HouseholdMember{{Name: "Ravi", Relation: "son"}, {Name: "Mira"}},
		Documents:         []models.Document{{Type: models.DocumentTypePAN, Name: "PAN"}},
	}
	err := ValidateTenant(tn)
	assert.ElementsMatch(t, []string{"additional_members[1].relation", "documents[0].url"}, fieldNames(err))
	for _, f := range Fields(err) {
		assert.Equal(t, "is required", f.Message, f.Field)
	}
}

func TestValidationMessages(t *testing.T) {
	p := validProperty()
	p.Type = "castle"
	fields := Fields(ValidateProperty(p))
	require.Len(t, fields, 1)
	assert.Equal(t, FieldError{Field: "type", Message: `invalid value "castle"`}, fields[0])

	amount := decimal.NewFromInt(-1)
	fields = Fields(ValidatePaymentPatch(models.RentPaymentPatch{Amount: &amount}))
	require.Len(t, fields, 1)
	assert.Equal(t, FieldError{Field: "amount", Message: "must be positive"}, fields[0])
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Hello", Sanitize("<b>Hello</b><script>alert(1)</script>"))
	assert.Equal(t, "O'Brien & Sons", Sanitize("  O'Brien & Sons "))

	p := validProperty()
	p.Name = "<i>Lakeview</i>"
	SanitizeProperty(p)
	assert.Equal(t, "Lakeview", p.Name)
}

func TestSanitizeEntityEncodedMarkup(t *testing.T) {
	assert.NotContains(t, Sanitize("&lt;script&gt;x&lt;/script&gt;"), "<")

	once := Sanitize("&lt;script&gt;alert(1)&lt;/script&gt;Asha")
	assert.Equal(t, "Asha", once)
	assert.Equal(t, once, Sanitize(once))

	assert.Equal(t, "&lt;b&gt;", Sanitize("&amp;lt;b&amp;gt;"))
}
