package complexes

import "time"

// Complex is a strata building or estate owned by an org.
type Complex struct {
	ID              int64      `json:"id"`
	OrgID           int64      `json:"orgId"`
	StrataPlan      string     `json:"strataPlan"`
	Name            string     `json:"name"`
	SPNum           *string    `json:"spNum,omitempty"`
	Address1        string     `json:"address1"`
	Address2        *string    `json:"address2,omitempty"`
	Suburb          string     `json:"suburb"`
	State           string     `json:"state"`
	Postcode        string     `json:"postcode"`
	ABN             string     `json:"abn"`
	TFN             *string    `json:"tfn,omitempty"`
	Classification  *string    `json:"classification,omitempty"`
	Storeys         *int       `json:"storeys,omitempty"`
	Characteristics *string    `json:"characteristics,omitempty"`
	TotalFloorArea  *int       `json:"totalFloorArea,omitempty"`
	TotalLandArea   *int       `json:"totalLandArea,omitempty"`
	BuildDate       *time.Time `json:"buildDate,omitempty"`
	Builder         *string    `json:"builder,omitempty"`
	DeactivatedAt   *time.Time `json:"deactivatedAt,omitempty"`
}

// CreateInput carries the fields of a new complex.
type CreateInput struct {
	OrgID           int64      `json:"orgId" validate:"required,min=1"`
	StrataPlan      string     `json:"strataPlan" validate:"required,max=16"`
	Name            string     `json:"name" validate:"required,max=255"`
	SPNum           *string    `json:"spNum" validate:"omitempty,max=255"`
	Address1        string     `json:"address1" validate:"required,max=255"`
	Address2        *string    `json:"address2" validate:"omitempty,max=255"`
	Suburb          string     `json:"suburb" validate:"required,max=45"`
	State           string     `json:"state" validate:"required,max=45"`
	Postcode        string     `json:"postcode" validate:"required,len=6"`
	ABN             string     `json:"abn" validate:"required,len=11"`
	TFN             *string    `json:"tfn" validate:"omitempty,len=9"`
	Classification  *string    `json:"classification" validate:"omitempty,max=255"`
	Storeys         *int       `json:"storeys" validate:"omitempty,min=0"`
	Characteristics *string    `json:"characteristics" validate:"omitempty,max=255"`
	TotalFloorArea  *int       `json:"totalFloorArea"`
	TotalLandArea   *int       `json:"totalLandArea"`
	BuildDate       *time.Time `json:"buildDate"`
	Builder         *string    `json:"builder" validate:"omitempty,max=255"`
}

// UpdateInput carries a partial update; nil fields stay untouched. The
// owning org of a complex never changes.
type UpdateInput struct {
	StrataPlan      *string    `json:"strataPlan" validate:"omitempty,max=16"`
	Name            *string    `json:"name" validate:"omitempty,max=255"`
	SPNum           *string    `json:"spNum" validate:"omitempty,max=255"`
	Address1        *string    `json:"address1" validate:"omitempty,max=255"`
	Address2        *string    `json:"address2" validate:"omitempty,max=255"`
	Suburb          *string    `json:"suburb" validate:"omitempty,max=45"`
	State           *string    `json:"state" validate:"omitempty,max=45"`
	Postcode        *string    `json:"postcode" validate:"omitempty,len=6"`
	ABN             *string    `json:"abn" validate:"omitempty,len=11"`
	TFN             *string    `json:"tfn" validate:"omitempty,len=9"`
	Classification  *string    `json:"classification" validate:"omitempty,max=255"`
	Storeys         *int       `json:"storeys" validate:"omitempty,min=0"`
	Characteristics *string    `json:"characteristics" validate:"omitempty,max=255"`
	TotalFloorArea  *int       `json:"totalFloorArea"`
	TotalLandArea   *int       `json:"totalLandArea"`
	BuildDate       *time.Time `json:"buildDate"`
	Builder         *string    `json:"builder" validate:"omitempty,max=255"`
	DeactivatedAt   *time.Time `json:"deactivatedAt"`
}
