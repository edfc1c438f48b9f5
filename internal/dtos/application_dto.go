package dtos

type CreateApplicationRequest struct {
	ApplicationType       string `json:"application_type" binding:"required"`
	LocalWorkforceCount   *int   `json:"local_workforce_count" binding:"required"`
	ForeignWorkforceCount *int   `json:"foreign_workforce_count" binding:"required"`
	ServicesDescription   string `json:"services_description" binding:"required"`

	// Optional contact fields
	ContactName    string `json:"contact_name"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	ContactAddress string `json:"contact_address"`
}

// UpdateApplicationRequest carries a partial edit; nil fields are left
// untouched. Status and review fields are deliberately absent — those only
// move through the workflow endpoints.
type UpdateApplicationRequest struct {
	ApplicationType       *string `json:"application_type"`
	LocalWorkforceCount   *int    `json:"local_workforce_count"`
	ForeignWorkforceCount *int    `json:"foreign_workforce_count"`
	ContactName           *string `json:"contact_name"`
	ContactEmail          *string `json:"contact_email"`
	ContactPhone          *string `json:"contact_phone"`
	ContactAddress        *string `json:"contact_address"`
	ServicesDescription   *string `json:"services_description"`
}

type StatusUpdateRequest struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

// ApplicationFilters narrows the administrator listing. All fields optional.
type ApplicationFilters struct {
	Status          string `form:"status"`
	ApplicationType string `form:"application_type"`
	Search          string `form:"search"`
}
