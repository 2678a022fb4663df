// internal/models/user.go
package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User covers the three roles of the mall: admins, boutique owners and
// clients. For role=boutique, IsActive doubles as the "owner approved"
// flag: the account is created inactive and flipped on admin approval.
type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;index"`
	FirstName    string   `json:"firstName" gorm:"size:100"`
	LastName     string   `json:"lastName" gorm:"size:100"`
	Phone        string   `json:"phone" gorm:"size:30"`
	Address      Address  `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	IsActive     bool     `json:"isActive" gorm:"default:true"`
	SoftDelete
}

func (u *User) MarkDeleted(deletedBy *uuid.UUID) {
	u.markDeleted(deletedBy)
	u.IsActive = false
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}
