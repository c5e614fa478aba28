package repository

import (
	"errors" // Sentinel error matching

	"gorm.io/gorm" // GORM ORM library

	"minhasfinancas/internal/domain" // Domain models
)

// UsuarioRepository persists user records
type UsuarioRepository interface {
	Save(usuario *domain.Usuario) error                 // Insert or update, assigns the ID on insert
	FindByID(id uint) (*domain.Usuario, error)          // Returns (nil, nil) when absent
	FindByEmail(email string) (*domain.Usuario, error)  // Returns (nil, nil) when absent
	ExistsByEmail(email string) (bool, error)           // Existence check used by registration
}

// usuarioRepository is the GORM-backed implementation
type usuarioRepository struct {
	db *gorm.DB // Database handle
}

// NewUsuarioRepository builds a user store on top of the given database
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

// Save inserts or updates the user record
func (r *usuarioRepository) Save(usuario *domain.Usuario) error {
	return r.db.Save(usuario).Error
}

// FindByID fetches a user by primary key
func (r *usuarioRepository) FindByID(id uint) (*domain.Usuario, error) {
	var usuario domain.Usuario
	if err := r.db.First(&usuario, id).Error; err != nil {
		// Absent records are an empty result, not an error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// FindByEmail fetches a user by email
func (r *usuarioRepository) FindByEmail(email string) (*domain.Usuario, error) {
	var usuario domain.Usuario
	if err := r.db.Where("email = ?", email).First(&usuario).Error; err != nil {
		// Absent records are an empty result, not an error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// ExistsByEmail reports whether any user carries the given email
func (r *usuarioRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Usuario{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
