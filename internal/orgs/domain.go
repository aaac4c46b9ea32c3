package orgs

// Org is a tenant: a strata management company owning complexes, lots
// and user accounts.
type Org struct {
	ID          int64   `json:"id"`
	TradingName string  `json:"tradingName"`
	CompanyName *string `json:"companyName,omitempty"`
	ABN         string  `json:"abn"`
	Address1    string  `json:"address1"`
	Address2    *string `json:"address2,omitempty"`
	Suburb      string  `json:"suburb"`
	State       string  `json:"state"`
	Postcode    string  `json:"postcode"`
}

// CreateInput carries the fields of a new org.
type CreateInput struct {
	TradingName string  `json:"tradingName" validate:"required,max=255"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=255"`
	ABN         string  `json:"abn" validate:"required,len=11"`
	Address1    string  `json:"address1" validate:"required,max=255"`
	Address2    *string `json:"address2" validate:"omitempty,max=255"`
	Suburb      string  `json:"suburb" validate:"required,max=45"`
	State       string  `json:"state" validate:"required,max=45"`
	Postcode    string  `json:"postcode" validate:"required,max=6"`
}

// UpdateInput carries a partial update; nil fields stay untouched.
type UpdateInput struct {
	TradingName *string `json:"tradingName" validate:"omitempty,max=255"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=255"`
	ABN         *string `json:"abn" validate:"omitempty,len=11"`
	Address1    *string `json:"address1" validate:"omitempty,max=255"`
	Address2    *string `json:"address2" validate:"omitempty,max=255"`
	Suburb      *string `json:"suburb" validate:"omitempty,max=45"`
	State       *string `json:"state" validate:"omitempty,max=45"`
	Postcode    *string `json:"postcode" validate:"omitempty,max=6"`
}
