package models

// IndustryPartner is a company the institution works with.
// Backed by table `industry_partners`
type IndustryPartner struct {
	ID            int     `json:"id" db:"id"`
	CompanyName   string  `json:"company_name" db:"company_name"`
	Domain        string  `json:"domain" db:"domain"`
	ContactPerson string  `json:"contact_person" db:"contact_person"`
	ContactEmail  string  `json:"contact_email" db:"contact_email"`
	Description   *string `json:"description" db:"description"`
}

// IndustryPartnerCreateRequest represents partner creation request
// Text fields are pointers so an empty string passes the presence check.
type IndustryPartnerCreateRequest struct {
	CompanyName   *string `json:"company_name" binding:"required"`
	Domain        *string `json:"domain" binding:"required"`
	ContactPerson *string `json:"contact_person" binding:"required"`
	ContactEmail  string  `json:"contact_email" binding:"required,email"`
	Description   *string `json:"description"`
}

// IndustryPartnerUpdateRequest represents a partial partner update.
// Only fields present in the payload are written.
type IndustryPartnerUpdateRequest struct {
	CompanyName   Optional[string] `json:"company_name"`
	Domain        Optional[string] `json:"domain"`
	ContactPerson Optional[string] `json:"contact_person"`
	ContactEmail  Optional[string] `json:"contact_email"`
	Description   Optional[string] `json:"description"`
}

// Empty reports whether no field was supplied.
func (r IndustryPartnerUpdateRequest) Empty() bool {
	return !r.CompanyName.Set && !r.Domain.Set && !r.ContactPerson.Set && !r.ContactEmail.Set && !r.Description.Set
}

// NullRequiredField returns the JSON name of the first NOT NULL column the
// payload tries to set to null, or "" when there is none.
func (r IndustryPartnerUpdateRequest) NullRequiredField() string {
	switch {
	case r.CompanyName.Null:
		return "company_name"
	case r.Domain.Null:
		return "domain"
	case r.ContactPerson.Null:
		return "contact_person"
	case r.ContactEmail.Null:
		return "contact_email"
	}
	return ""
}

// UserIndustryLink ties a user of the external user system to a partner.
// Backed by table `user_industry_links`
type UserIndustryLink struct {
	ID        int `json:"id" db:"id"`
	UserID    int `json:"user_id" db:"user_id"`
	PartnerID int `json:"partner_id" db:"partner_id"`
}

// UserIndustryLinkCreateRequest represents a link creation request
type UserIndustryLinkCreateRequest struct {
	UserID    *int `json:"user_id" binding:"required"`
	PartnerID *int `json:"partner_id" binding:"required"`
}

// MessageResponse is the body returned by operations without a record to return
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
