// Package seed loads a YAML fixture of properties with nested rooms, tenants
// and payments, and applies it through the service so ids and timestamps are
// assigned as for any other write.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/validation"
)

// Amount is a decimal read from a YAML scalar such as 5000 or "5000.50"
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	a.Decimal = d
	return nil
}

// File is the root of a seed document
type File struct {
	Properties []Property `yaml:"properties"`
}

type Property struct {
	Name        string              `yaml:"name"`
	Address     string              `yaml:"address"`
	City        string              `yaml:"city"`
	State       string              `yaml:"state"`
	ZipCode     string              `yaml:"zip_code"`
	Type        models.PropertyType `yaml:"type"`
	TotalRooms  int                 `yaml:"total_rooms"`
	Description *string             `yaml:"description"`
	PhoneNumber *string             `yaml:"phone_number"`
	Email       *string             `yaml:"email"`
	Rooms       []Room              `yaml:"rooms"`
}

type Room struct {
	Number     string            `yaml:"number"`
	Type       models.RoomType   `yaml:"type"`
	Status     models.RoomStatus `yaml:"status"`
	RentAmount Amount            `yaml:"rent_amount"`
	Floor      *int              `yaml:"floor"`
	Amenities  []string          `yaml:"amenities"`
	Tenants    []Tenant          `yaml:"tenants"`
}

type Tenant struct {
	FirstName         string                   `yaml:"first_name"`
	LastName          string                   `yaml:"last_name"`
	Email             string                   `yaml:"email"`
	Phone             string                   `yaml:"phone"`
	MoveInDate        time.Time                `yaml:"move_in_date"`
	MoveOutDate       *time.Time               `yaml:"move_out_date"`
	IsActive          *bool                    `yaml:"is_active"`
	EmergencyContact  *models.EmergencyContact `yaml:"emergency_contact"`
	AdditionalMembers []Member                 `yaml:"additional_members"`
	Payments          []Payment                `yaml:"payments"`
}

type Member struct {
	Name     string  `yaml:"name"`
	Relation string  `yaml:"relation"`
	Phone    *string `yaml:"phone"`
	Age      *int    `yaml:"age"`
}

type Payment struct {
	Amount   Amount               `yaml:"amount"`
	DueDate  time.Time            `yaml:"due_date"`
	PaidDate *time.Time           `yaml:"paid_date"`
	Status   models.PaymentStatus `yaml:"status"`
	Notes    *string              `yaml:"notes"`
}

// Applier is the subset of the service a seed needs
type Applier interface {
	AddProperty(ctx context.Context, property *models.Property) (*models.Property, error)
	AddRoom(ctx context.Context, room *models.Room) (*models.Room, error)
	AddTenant(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	AddPayment(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error)
}

// Summary counts the records a seed created
type Summary struct {
	Properties int
	Rooms      int
	Tenants    int
	Payments   int
}

// Load decodes a seed document, rejecting unknown keys
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return f, nil
}

// LoadFile reads and decodes the seed document at path
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Apply writes every record in f through svc. It stops at the first invalid
// or failing record; records written before that are kept.
func Apply(ctx context.Context, svc Applier, f *File, logger *logrus.Logger) (Summary, error) {
	var sum Summary
	for pi, sp := range f.Properties {
		path := fmt.Sprintf("properties[%d]", pi)
		property := &models.Property{
			Name: sp.Name, Address: sp.Address, City: sp.City, State: sp.State, ZipCode: sp.ZipCode,
			Type: sp.Type, TotalRooms: sp.TotalRooms, Description: sp.Description,
			PhoneNumber: sp.PhoneNumber, Email: sp.Email,
		}
		if err := validation.ValidateProperty(property); err != nil {
			return sum, fmt.Errorf("%s: %w", path, err)
		}
		p, err := svc.AddProperty(ctx, property)
		if err != nil {
			return sum, fmt.Errorf("%s: %w", path, err)
		}
		sum.Properties++

		for ri, sr := range sp.Rooms {
			rpath := fmt.Sprintf("%s.rooms[%d]", path, ri)
			if err := applyRoom(ctx, svc, p, sr, rpath, &sum); err != nil {
				return sum, err
			}
		}
	}
	logger.WithFields(logrus.Fields{
		"properties": sum.Properties,
		"rooms":      sum.Rooms,
		"tenants":    sum.Tenants,
		"payments":   sum.Payments,
	}).Info("Seed applied")
	return sum, nil
}

func applyRoom(ctx context.Context, svc Applier, p *models.Property, sr Room, path string, sum *Summary) error {
	status := sr.Status
	if status == "" {
		status = models.RoomStatusAvailable
	}
	room := &models.Room{
		PropertyID: p.ID, Number: sr.Number, Type: sr.Type, Status: status,
		RentAmount: sr.RentAmount.Decimal, Floor: sr.Floor, Amenities: sr.Amenities,
	}
	if err := validation.ValidateRoom(room); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rm, err := svc.AddRoom(ctx, room)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	sum.Rooms++

	for ti, st := range sr.Tenants {
		tpath := fmt.Sprintf("%s.tenants[%d]", path, ti)
		if err := applyTenant(ctx, svc, rm, st, tpath, sum); err != nil {
			return err
		}
	}
	return nil
}

func applyTenant(ctx context.Context, svc Applier, rm *models.Room, st Tenant, path string, sum *Summary) error {
	active := true
	if st.IsActive != nil {
		active = *st.IsActive
	}
	tenant := &models.Tenant{
		FirstName: st.FirstName, LastName: st.LastName, Email: st.Email, Phone: st.Phone,
		RoomID: rm.ID, PropertyID: rm.PropertyID, MoveInDate: st.MoveInDate, MoveOutDate: st.MoveOutDate,
		IsActive: active, EmergencyContact: st.EmergencyContact,
	}
	for _, m := range st.AdditionalMembers {
		tenant.AdditionalMembers = append(tenant.AdditionalMembers, models.HouseholdMember{
			Name: m.Name, Relation: m.Relation, Phone: m.Phone, Age: m.Age,
		})
	}
	if err := validation.ValidateTenant(tenant); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	t, err := svc.AddTenant(ctx, tenant)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	sum.Tenants++

	for pi, spay := range st.Payments {
		ppath := fmt.Sprintf("%s.payments[%d]", path, pi)
		status := spay.Status
		if status == "" {
			status = models.PaymentStatusPending
		}
		payment := &models.RentPayment{
			TenantID: t.ID, RoomID: t.RoomID, PropertyID: t.PropertyID,
			Amount: spay.Amount.Decimal, DueDate: spay.DueDate, PaidDate: spay.PaidDate,
			Status: status, Notes: spay.Notes,
		}
		if err := validation.ValidatePayment(payment); err != nil {
			return fmt.Errorf("%s: %w", ppath, err)
		}
		if _, err := svc.AddPayment(ctx, payment); err != nil {
			return fmt.Errorf("%s: %w", ppath, err)
		}
		sum.Payments++
	}
	return nil
}
