package lots

import "time"

// Lot is an individual property inside a complex.
type Lot struct {
	ID              int64      `json:"id"`
	ComplexID       int64      `json:"complexId"`
	Occupier        *string    `json:"occupier,omitempty"`
	Classification  *string    `json:"classification,omitempty"`
	Storeys         *int       `json:"storeys,omitempty"`
	Characteristics *string    `json:"characteristics,omitempty"`
	FloorArea       *int       `json:"floorArea,omitempty"`
	LandArea        *int       `json:"landArea,omitempty"`
	BuildDate       *time.Time `json:"buildDate,omitempty"`
	Address1        string     `json:"address1"`
	Address2        *string    `json:"address2,omitempty"`
	Suburb          string     `json:"suburb"`
	State           string     `json:"state"`
	Postcode        string     `json:"postcode"`
	GPSLatitude     string     `json:"gpsLatitude"`
	GPSLongitude    string     `json:"gpsLongitude"`
	DeactivatedAt   *time.Time `json:"deactivatedAt,omitempty"`
}

// CreateInput carries the fields of a new lot.
type CreateInput struct {
	ComplexID       int64      `json:"complexId" validate:"required,min=1"`
	Occupier        *string    `json:"occupier" validate:"omitempty,max=255"`
	Classification  *string    `json:"classification" validate:"omitempty,max=255"`
	Storeys         *int       `json:"storeys" validate:"omitempty,min=0"`
	Characteristics *string    `json:"characteristics" validate:"omitempty,max=255"`
	FloorArea       *int       `json:"floorArea"`
	LandArea        *int       `json:"landArea"`
	BuildDate       *time.Time `json:"buildDate"`
	Address1        string     `json:"address1" validate:"required,max=255"`
	Address2        *string    `json:"address2" validate:"omitempty,max=255"`
	Suburb          string     `json:"suburb" validate:"required,max=45"`
	State           string     `json:"state" validate:"required,max=45"`
	Postcode        string     `json:"postcode" validate:"required,len=6"`
	GPSLatitude     string     `json:"gpsLatitude" validate:"required,max=45"`
	GPSLongitude    string     `json:"gpsLongitude" validate:"required,max=45"`
}

// UpdateInput carries a partial update; nil fields stay untouched. A lot
// never moves between complexes.
type UpdateInput struct {
	Occupier        *string    `json:"occupier" validate:"omitempty,max=255"`
	Classification  *string    `json:"classification" validate:"omitempty,max=255"`
	Storeys         *int       `json:"storeys" validate:"omitempty,min=0"`
	Characteristics *string    `json:"characteristics" validate:"omitempty,max=255"`
	FloorArea       *int       `json:"floorArea"`
	LandArea        *int       `json:"landArea"`
	BuildDate       *time.Time `json:"buildDate"`
	Address1        *string    `json:"address1" validate:"omitempty,max=255"`
	Address2        *string    `json:"address2" validate:"omitempty,max=255"`
	Suburb          *string    `json:"suburb" validate:"omitempty,max=45"`
	State           *string    `json:"state" validate:"omitempty,max=45"`
	Postcode        *string    `json:"postcode" validate:"omitempty,len=6"`
	GPSLatitude     *string    `json:"gpsLatitude" validate:"omitempty,max=45"`
	GPSLongitude    *string    `json:"gpsLongitude" validate:"omitempty,max=45"`
	DeactivatedAt   *time.Time `json:"deactivatedAt"`
}
