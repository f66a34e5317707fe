package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType is the layout of a room
type RoomType string

const (
	RoomTypeSingle    RoomType = "single"
	RoomTypeDouble    RoomType = "double"
	RoomTypeStudio    RoomType = "studio"
	RoomTypeApartment RoomType = "apartment"
)

// Valid reports whether t is a known room type
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeStudio, RoomTypeApartment:
		return true
	}
	return false
}

// RoomStatus is the occupancy state of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Valid reports whether s is a known room status
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room represents a rentable room inside a property.
// PropertyID is a plain reference; it is not checked against existing properties.
type Room struct {
	ID         string          `json:"id" db:"id"`
	PropertyID string          `json:"property_id" db:"property_id" validate:"required"`
	Number     string          `json:"number" db:"number" validate:"required,max=50"`
	Type       RoomType        `json:"type" db:"type" validate:"oneof=single double studio apartment"`
	Status     RoomStatus      `json:"status" db:"status" validate:"oneof=available occupied maintenance"`
	RentAmount decimal.Decimal `json:"rent_amount" db:"rent_amount" validate:"gt=0"`
	Floor      *int            `json:"floor,omitempty" db:"floor"`
	Amenities  []string        `json:"amenities,omitempty" db:"amenities"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// RoomPatch holds the fields of a partial room update
type RoomPatch struct {
	PropertyID *string          `json:"property_id,omitempty" validate:"omitempty,min=1"`
	Number     *string          `json:"number,omitempty" validate:"omitempty,min=1,max=50"`
	Type       *RoomType        `json:"type,omitempty" validate:"omitempty,oneof=single double studio apartment"`
	Status     *RoomStatus      `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	RentAmount *decimal.Decimal `json:"rent_amount,omitempty" validate:"omitempty,gt=0"`
	Floor      *int             `json:"floor,omitempty"`
	Amenities  []string         `json:"amenities,omitempty"`
}

// Apply merges the patch into r. It does not touch timestamps.
func (r *Room) Apply(patch RoomPatch) {
	if patch.PropertyID != nil {
		r.PropertyID = *patch.PropertyID
	}
	if patch.Number != nil {
		r.Number = *patch.Number
	}
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.RentAmount != nil {
		r.RentAmount = *patch.RentAmount
	}
	if patch.Floor != nil {
		f := *patch.Floor
		r.Floor = &f
	}
	if patch.Amenities != nil {
		r.Amenities = cloneStrings(patch.Amenities)
	}
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	c := *r
	if r.Floor != nil {
		f := *r.Floor
		c.Floor = &f
	}
	c.Amenities = cloneStrings(r.Amenities)
	return &c
}
