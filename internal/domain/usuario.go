package domain

import "time"

// Usuario Model
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`    // Primary key
	Nome         string    `gorm:"not null" json:"nome"`    // Display name
	Email        string    `gorm:"not null" json:"email"`   // Uniqueness enforced by the service check, not the schema
	Senha        string    `gorm:"not null" json:"-"`       // Bcrypt hash, never serialized
	DataCadastro time.Time `gorm:"autoCreateTime" json:"-"` // Timestamp of creation
}
