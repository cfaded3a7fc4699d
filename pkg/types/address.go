package types

import "strings"

// DeliveryAddress is where a campus order is dropped off.
type DeliveryAddress struct {
	FullName string  `json:"fullName" validate:"required,max=120"`
	Phone    string  `json:"phone" validate:"required,max=32"`
	Hostel   string  `json:"hostel" validate:"required,max=120"`
	Room     *string `json:"room,omitempty" validate:"omitempty,max=32"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Normalize trims whitespace in place and drops empty optional fields.
func (a *DeliveryAddress) Normalize() {
	if a == nil {
		return
	}
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Hostel = strings.TrimSpace(a.Hostel)
	a.Room = trimOptional(a.Room)
	a.Notes = trimOptional(a.Notes)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
