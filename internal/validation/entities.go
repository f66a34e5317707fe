package validation

import "github.com/Kerhoff/rentbook/internal/models"

func ValidateProperty(p *models.Property) error {
	return check(p)
}

// ValidatePropertyPatch checks only the fields present in the patch
func ValidatePropertyPatch(patch models.PropertyPatch) error {
	return check(&patch)
}

func ValidateRoom(r *models.Room) error {
	return check(r)
}

func ValidateRoomPatch(patch models.RoomPatch) error {
	return check(&patch)
}

func ValidateTenant(t *models.Tenant) error {
	return check(t)
}

func ValidateTenantPatch(patch models.TenantPatch) error {
	return check(&patch)
}

// ValidateMember checks a single household member
func ValidateMember(m *models.HouseholdMember) error {
	return check(m)
}

// ValidateDocument checks a single tenant document
func ValidateDocument(d *models.Document) error {
	return check(d)
}

func ValidatePayment(p *models.RentPayment) error {
	return check(p)
}

func ValidatePaymentPatch(patch models.RentPaymentPatch) error {
	return check(&patch)
}

// SanitizeProperty strips markup from the free-text property fields
func SanitizeProperty(p *models.Property) {
	p.Name = Sanitize(p.Name)
	p.Address = Sanitize(p.Address)
	p.City = Sanitize(p.City)
	p.State = Sanitize(p.State)
	p.ZipCode = Sanitize(p.ZipCode)
	SanitizePtr(p.Description)
}

func SanitizePropertyPatch(patch *models.PropertyPatch) {
	SanitizePtr(patch.Name)
	SanitizePtr(patch.Address)
	SanitizePtr(patch.City)
	SanitizePtr(patch.State)
	SanitizePtr(patch.ZipCode)
	SanitizePtr(patch.Description)
}

func SanitizeRoom(r *models.Room) {
	r.Number = Sanitize(r.Number)
	for i := range r.Amenities {
		r.Amenities[i] = Sanitize(r.Amenities[i])
	}
}

func SanitizeTenant(t *models.Tenant) {
	t.FirstName = Sanitize(t.FirstName)
	t.LastName = Sanitize(t.LastName)
	if t.EmergencyContact != nil {
		t.EmergencyContact.Name = Sanitize(t.EmergencyContact.Name)
	}
	for i := range t.AdditionalMembers {
		SanitizeMember(&t.AdditionalMembers[i])
	}
	for i := range t.Documents {
		t.Documents[i].Name = Sanitize(t.Documents[i].Name)
	}
}

func SanitizeTenantPatch(patch *models.TenantPatch) {
	SanitizePtr(patch.FirstName)
	SanitizePtr(patch.LastName)
	if patch.EmergencyContact != nil {
		patch.EmergencyContact.Name = Sanitize(patch.EmergencyContact.Name)
	}
	for i := range patch.AdditionalMembers {
		SanitizeMember(&patch.AdditionalMembers[i])
	}
}

func SanitizeMember(m *models.HouseholdMember) {
	m.Name = Sanitize(m.Name)
	m.Relation = Sanitize(m.Relation)
}

func SanitizePayment(p *models.RentPayment) {
	SanitizePtr(p.Notes)
}
