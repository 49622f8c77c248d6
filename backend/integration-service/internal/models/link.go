package models

// ProcessPartnerLink ties a process in the Process service to an industry partner.
// Backed by table `process_partner_links`
type ProcessPartnerLink struct {
	ID        int `json:"id" db:"id"`
	ProcessID int `json:"process_id" db:"process_id"`
	PartnerID int `json:"partner_id" db:"partner_id"`
}

// LinkCreateRequest represents a process-partner link request.
// Pointers let `required` check presence only, so 0 is a valid id.
type LinkCreateRequest struct {
	ProcessID *int `json:"process_id" binding:"required"`
	PartnerID *int `json:"partner_id" binding:"required"`
}

// LinkDeleteQuery identifies the link removed by DELETE /link/
type LinkDeleteQuery struct {
	ProcessID *int `form:"process_id" binding:"required"`
	PartnerID *int `form:"partner_id" binding:"required"`
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}
