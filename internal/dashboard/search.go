package dashboard

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kerhoff/rentbook/internal/models"
)

// Field names a searchable attribute of T
type Field[T any] struct {
	Name  string
	Value func(T) any
}

// Search keeps the items where any of fields, stringified and lower-cased,
// contains term lower-cased. An empty term returns items unchanged.
func Search[T any](items []T, term string, fields ...Field[T]) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	return filter(items, func(it T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(Stringify(f.Value(it))), needle) {
				return true
			}
		}
		return false
	})
}

// Stringify renders v the way the search matches against it.
// Absent optional values render as "undefined", an untyped nil as "null".
func Stringify(v any) string {
	if v == nil {
		return "null"
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "undefined"
		}
		return Stringify(rv.Elem().Interface())
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case []string:
		if x == nil {
			return "undefined"
		}
		return strings.Join(x, ",")
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return "undefined"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// PropertyFields are the searchable property attributes
var PropertyFields = []Field[*models.Property]{
	{"name", func(p *models.Property) any { return p.Name }},
	{"address", func(p *models.Property) any { return p.Address }},
	{"city", func(p *models.Property) any { return p.City }},
	{"state", func(p *models.Property) any { return p.State }},
	{"zip_code", func(p *models.Property) any { return p.ZipCode }},
	{"type", func(p *models.Property) any { return p.Type }},
	{"total_rooms", func(p *models.Property) any { return p.TotalRooms }},
	{"description", func(p *models.Property) any { return p.Description }},
	{"phone_number", func(p *models.Property) any { return p.PhoneNumber }},
	{"email", func(p *models.Property) any { return p.Email }},
}

// RoomFields are the searchable room attributes
var RoomFields = []Field[*models.Room]{
	{"number", func(r *models.Room) any { return r.Number }},
	{"type", func(r *models.Room) any { return r.Type }},
	{"status", func(r *models.Room) any { return r.Status }},
	{"property_id", func(r *models.Room) any { return r.PropertyID }},
	{"rent_amount", func(r *models.Room) any { return r.RentAmount }},
	{"floor", func(r *models.Room) any { return r.Floor }},
	{"amenities", func(r *models.Room) any { return r.Amenities }},
}

// TenantFields are the searchable tenant attributes
var TenantFields = []Field[*models.Tenant]{
	{"first_name", func(t *models.Tenant) any { return t.FirstName }},
	{"last_name", func(t *models.Tenant) any { return t.LastName }},
	{"email", func(t *models.Tenant) any { return t.Email }},
	{"phone", func(t *models.Tenant) any { return t.Phone }},
	{"room_id", func(t *models.Tenant) any { return t.RoomID }},
	{"property_id", func(t *models.Tenant) any { return t.PropertyID }},
	{"is_active", func(t *models.Tenant) any { return t.IsActive }},
}

// PaymentFields are the searchable payment attributes
var PaymentFields = []Field[*models.RentPayment]{
	{"status", func(p *models.RentPayment) any { return p.Status }},
	{"notes", func(p *models.RentPayment) any { return p.Notes }},
	{"tenant_id", func(p *models.RentPayment) any { return p.TenantID }},
	{"room_id", func(p *models.RentPayment) any { return p.RoomID }},
	{"amount", func(p *models.RentPayment) any { return p.Amount }},
}

// Default field sets used when the caller names none
var (
	DefaultPropertyFields = []string{"name", "city", "address"}
	DefaultRoomFields     = []string{"number", "type"}
	DefaultTenantFields   = []string{"first_name", "last_name", "email", "phone"}
	DefaultPaymentFields  = []string{"status", "notes"}
)

// SelectFields picks fields from table by name, in the order given.
// Unknown names are reported as an error.
func SelectFields[T any](table []Field[T], names []string) ([]Field[T], error) {
	out := make([]Field[T], 0, len(names))
	for _, name := range names {
		found := false
		for _, f := range table {
			if f.Name == name {
				out = append(out, f)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown search field %q", name)
		}
	}
	return out, nil
}

// FilterRooms applies the text search and then an exact status match when status is set
func FilterRooms(rooms []*models.Room, term string, status models.RoomStatus) []*models.Room {
	fields, _ := SelectFields(RoomFields, DefaultRoomFields)
	out := Search(rooms, term, fields...)
	if status == "" {
		return out
	}
	return filter(out, func(r *models.Room) bool { return r.Status == status })
}
