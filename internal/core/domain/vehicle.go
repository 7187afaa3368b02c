package domain

import (
	"time"

	"github.com/google/uuid"
)

type Availability string

const (
	VehicleAvailable   Availability = "Available"
	VehicleUnavailable Availability = "Unavailable"
)

func (a Availability) Valid() bool {
	return a == VehicleAvailable || a == VehicleUnavailable
}

type VehicleSpec struct {
	ID              uuid.UUID `json:"vehicle_spec_id"`
	Manufacturer    string    `json:"manufacturer"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	FuelType        *string   `json:"fuel_type"`
	EngineCapacity  *string   `json:"engine_capacity"`
	Transmission    *string   `json:"transmission"`
	SeatingCapacity *int      `json:"seating_capacity"`
	Color           *string   `json:"color"`
	Features        *string   `json:"features"`
	Image1          *string   `json:"image1"`
	Image2          *string   `json:"image2"`
	Image3          *string   `json:"image3"`
}

type Vehicle struct {
	ID           uuid.UUID    `json:"vehicle_id"`
	SpecID       uuid.UUID    `json:"vehicle_spec_id"`
	RentalRate   float64      `json:"rental_rate"`
	Availability Availability `json:"availability"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (v *Vehicle) IsAvailable() bool {
	return v.Availability == VehicleAvailable
}

// VehicleView is a vehicle joined with its specification.
type VehicleView struct {
	Vehicle
	Spec VehicleSpec `json:"specification"`
}

// VehicleUpdate carries the fields of a sparse vehicle update; nil fields
// are left unchanged.
type VehicleUpdate struct {
	RentalRate   *float64
	Availability *Availability
}
