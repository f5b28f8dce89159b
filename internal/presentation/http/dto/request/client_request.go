package request

// ClientRequest represents a client intake
type ClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Phone     string `json:"phone" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email"`
	Language  string `json:"language" binding:"omitempty,oneof=fr en"`
	Notes     string `json:"notes"`
}

// ClientFilterRequest represents client lookup parameters
type ClientFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
