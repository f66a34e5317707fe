package models

import "time"

// MaxAdditionalMembers caps the household members recorded per tenant.
// The max=5 rule on AdditionalMembers must agree with it.
const MaxAdditionalMembers = 5

// DocumentType tags an uploaded tenant document
type DocumentType string

const (
	DocumentTypeAadhar DocumentType = "aadhar"
	DocumentTypePAN    DocumentType = "pan"
	DocumentTypeOffice DocumentType = "office"
	DocumentTypeOther  DocumentType = "other"
)

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeAadhar, DocumentTypePAN, DocumentTypeOffice, DocumentTypeOther:
		return true
	}
	return false
}

// EmergencyContact is the person to call on behalf of a tenant
type EmergencyContact struct {
	Name  string `json:"name" validate:"max=100"`
	Phone string `json:"phone"`
}

// Document is an opaque attachment stored with a tenant. URL may be a data URL.
type Document struct {
	ID         string       `json:"id"`
	Type       DocumentType `json:"type" validate:"oneof=aadhar pan office other"`
	Name       string       `json:"name" validate:"required,max=200"`
	URL        string       `json:"url" validate:"required"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

// HouseholdMember is an additional occupant living with a tenant
type HouseholdMember struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required,max=100"`
	Relation string  `json:"relation" validate:"required,max=50"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,optmobile"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
}

// Tenant represents a person renting a room
type Tenant struct {
	ID                string            `json:"id" db:"id"`
	FirstName         string            `json:"first_name" db:"first_name" validate:"required,max=100"`
	LastName          string            `json:"last_name" db:"last_name" validate:"required,max=100"`
	Email             string            `json:"email" db:"email" validate:"required,email"`
	Phone             string            `json:"phone" db:"phone" validate:"inmobile"`
	RoomID            string            `json:"room_id" db:"room_id" validate:"required"`
	PropertyID        string            `json:"property_id" db:"property_id"`
	MoveInDate        time.Time         `json:"move_in_date" db:"move_in_date" validate:"required"`
	MoveOutDate       *time.Time        `json:"move_out_date,omitempty" db:"move_out_date"`
	IsActive          bool              `json:"is_active" db:"is_active"`
	EmergencyContact  *EmergencyContact `json:"emergency_contact,omitempty" db:"emergency_contact"`
	ProfilePicture    *string           `json:"profile_picture,omitempty" db:"profile_picture"`
	Documents         []Document        `json:"documents,omitempty" db:"documents" validate:"dive"`
	AdditionalMembers []HouseholdMember `json:"additional_members,omitempty" db:"additional_members" validate:"max=5,dive"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// FullName returns the tenant's full name
func (t *Tenant) FullName() string {
	if t.LastName != "" {
		return t.FirstName + " " + t.LastName
	}
	return t.FirstName
}

// TenantPatch holds the fields of a partial tenant update
type TenantPatch struct {
	FirstName         *string           `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName          *string           `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email             *string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string           `json:"phone,omitempty" validate:"omitempty,inmobile"`
	RoomID            *string           `json:"room_id,omitempty" validate:"omitempty,min=1"`
	PropertyID        *string           `json:"property_id,omitempty"`
	MoveInDate        *time.Time        `json:"move_in_date,omitempty"`
	MoveOutDate       *time.Time        `json:"move_out_date,omitempty"`
	IsActive          *bool             `json:"is_active,omitempty"`
	EmergencyContact  *EmergencyContact `json:"emergency_contact,omitempty"`
	ProfilePicture    *string           `json:"profile_picture,omitempty"`
	Documents         []Document        `json:"documents,omitempty" validate:"dive"`
	AdditionalMembers []HouseholdMember `json:"additional_members,omitempty" validate:"max=5,dive"`
}

// Apply merges the patch into t. It does not touch timestamps.
func (t *Tenant) Apply(patch TenantPatch) {
	if patch.FirstName != nil {
		t.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		t.LastName = *patch.LastName
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.Phone != nil {
		t.Phone = *patch.Phone
	}
	if patch.RoomID != nil {
		t.RoomID = *patch.RoomID
	}
	if patch.PropertyID != nil {
		t.PropertyID = *patch.PropertyID
	}
	if patch.MoveInDate != nil {
		t.MoveInDate = *patch.MoveInDate
	}
	if patch.MoveOutDate != nil {
		t.MoveOutDate = cloneTime(patch.MoveOutDate)
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
	if patch.EmergencyContact != nil {
		ec := *patch.EmergencyContact
		t.EmergencyContact = &ec
	}
	if patch.ProfilePicture != nil {
		t.ProfilePicture = cloneString(patch.ProfilePicture)
	}
	if patch.Documents != nil {
		t.Documents = cloneDocuments(patch.Documents)
	}
	if patch.AdditionalMembers != nil {
		t.AdditionalMembers = cloneMembers(patch.AdditionalMembers)
	}
}

// Clone returns a deep copy of the tenant
func (t *Tenant) Clone() *Tenant {
	c := *t
	c.MoveOutDate = cloneTime(t.MoveOutDate)
	if t.EmergencyContact != nil {
		ec := *t.EmergencyContact
		c.EmergencyContact = &ec
	}
	c.ProfilePicture = cloneString(t.ProfilePicture)
	c.Documents = cloneDocuments(t.Documents)
	c.AdditionalMembers = cloneMembers(t.AdditionalMembers)
	return &c
}

func cloneDocuments(docs []Document) []Document {
	if docs == nil {
		return nil
	}
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

func cloneMembers(members []HouseholdMember) []HouseholdMember {
	if members == nil {
		return nil
	}
	out := make([]HouseholdMember, len(members))
	for i, m := range members {
		m.Phone = cloneString(m.Phone)
		if m.Age != nil {
			a := *m.Age
			m.Age = &a
		}
		out[i] = m
	}
	return out
}
