package models

// User represents an operator account with access to the invoicing API.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"`
}
