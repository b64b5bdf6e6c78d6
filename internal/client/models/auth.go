package models

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login endpoint's answer. Token may be empty, which the
// caller must treat as a failed login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserSummary `json:"user,omitempty"`
}

// Registration is the body sent to the registration endpoint.
type Registration struct {
	DocumentNumber   string `json:"document_number"`
	Name             string `json:"name"`
	PaternalLastname string `json:"paternal_lastname"`
	MaternalLastname string `json:"maternal_lastname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	UserName         string `json:"user_name"`
	Password         string `json:"password"`
	DocumentTypeID   int    `json:"document_type_id"`
	CountryID        int    `json:"country_id"`

	// LastSession is the submit date formatted as YYYY-MM-DD.
	LastSession      string `json:"last_session"`
	AccountStatement bool   `json:"account_statement"`
}
