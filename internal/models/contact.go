package models

// ContactRequest is a message submitted through the public contact form
type ContactRequest struct {
	ID      int64  `json:"id,omitempty" db:"id"`
	Created int64  `json:"created" db:"created"`
	Email   string `json:"email" db:"email"`
	Subject string `json:"subject" db:"subject"`
	Message string `json:"message" db:"message"`
}

// ContactInput represents the public contact form
type ContactInput struct {
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}
