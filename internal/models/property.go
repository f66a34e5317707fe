package models

import "time"

// PropertyType is the category of a property
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeCommercial PropertyType = "commercial"
)

// PropertyTypes lists every property category in display order
var PropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeCondo,
	PropertyTypeCommercial,
}

// Valid reports whether t is a known property type
func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Property represents a rental building or unit owned by the landlord.
// TotalRooms is the declared capacity and is not reconciled with Room records.
type Property struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name" validate:"required,max=200"`
	Address     string       `json:"address" db:"address" validate:"required,max=300"`
	City        string       `json:"city" db:"city" validate:"required,max=100"`
	State       string       `json:"state" db:"state" validate:"required,max=100"`
	ZipCode     string       `json:"zip_code" db:"zip_code" validate:"required,max=20"`
	Type        PropertyType `json:"type" db:"type" validate:"oneof=apartment house condo commercial"`
	TotalRooms  int          `json:"total_rooms" db:"total_rooms" validate:"min=1"`
	Description *string      `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`
	PhoneNumber *string      `json:"phone_number,omitempty" db:"phone_number" validate:"omitempty,max=20"`
	Email       *string      `json:"email,omitempty" db:"email" validate:"omitempty,optemail"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// PropertyPatch holds the fields of a partial property update.
// Nil fields are left untouched.
type PropertyPatch struct {
	Name        *string       `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address     *string       `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
	City        *string       `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	State       *string       `json:"state,omitempty" validate:"omitempty,min=1,max=100"`
	ZipCode     *string       `json:"zip_code,omitempty" validate:"omitempty,min=1,max=20"`
	Type        *PropertyType `json:"type,omitempty" validate:"omitempty,oneof=apartment house condo commercial"`
	TotalRooms  *int          `json:"total_rooms,omitempty" validate:"omitempty,min=1"`
	Description *string       `json:"description,omitempty" validate:"omitempty,max=1000"`
	PhoneNumber *string       `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Email       *string       `json:"email,omitempty" validate:"omitempty,optemail"`
}

// Apply merges the patch into p. It does not touch timestamps.
func (p *Property) Apply(patch PropertyPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.State != nil {
		p.State = *patch.State
	}
	if patch.ZipCode != nil {
		p.ZipCode = *patch.ZipCode
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.TotalRooms != nil {
		p.TotalRooms = *patch.TotalRooms
	}
	if patch.Description != nil {
		p.Description = cloneString(patch.Description)
	}
	if patch.PhoneNumber != nil {
		p.PhoneNumber = cloneString(patch.PhoneNumber)
	}
	if patch.Email != nil {
		p.Email = cloneString(patch.Email)
	}
}

// Clone returns a deep copy of the property
func (p *Property) Clone() *Property {
	c := *p
	c.Description = cloneString(p.Description)
	c.PhoneNumber = cloneString(p.PhoneNumber)
	c.Email = cloneString(p.Email)
	return &c
}
