package service

import (
	"github.com/badoux/checkmail" // Email format validation
	"github.com/sirupsen/logrus"  // Structured logging
	"golang.org/x/crypto/bcrypt"  // Password hashing

	"minhasfinancas/internal/domain"     // Domain models and errors
	"minhasfinancas/internal/repository" // Store interfaces
)

// dummyHash is a bcrypt hash of a throwaway value; it is compared against
// when the email is unknown so response timing does not reveal whether an
// email is registered.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// UsuarioService orchestrates registration and authentication
type UsuarioService struct {
	repo repository.UsuarioRepository // User store
}

// NewUsuarioService builds the user service on top of the given store
func NewUsuarioService(repo repository.UsuarioRepository) *UsuarioService {
	return &UsuarioService{repo: repo}
}

// SalvarUsuario registers a new user: validates the email format, rejects
// duplicate emails, hashes the password and persists the record. The
// returned user carries the assigned ID and the hashed senha.
func (s *UsuarioService) SalvarUsuario(usuario *domain.Usuario) (*domain.Usuario, error) {
	if err := checkmail.ValidateFormat(usuario.Email); err != nil {
		return nil, domain.NewRegraNegocio("Informe um email válido.")
	}
	existe, err := s.repo.ExistsByEmail(usuario.Email)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.NewRegraNegocio("Já existe um usuário cadastrado com este email.")
	}
	// Hash the raw senha before it ever reaches the store
	hash, err := bcrypt.GenerateFromPassword([]byte(usuario.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario.Senha = string(hash)
	if err := s.repo.Save(usuario); err != nil {
		return nil, err
	}
	// Log the registration; senha and hash stay out of the fields
	logrus.WithFields(logrus.Fields{
		"usuario_id": usuario.ID,
		"email":      usuario.Email,
	}).Info("Usuário cadastrado")
	return usuario, nil
}

// Autenticar checks the credentials and returns the matching user. Unknown
// email and wrong password both come back as ErroAutenticacao.
func (s *UsuarioService) Autenticar(email, senha string) (*domain.Usuario, error) {
	usuario, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		// Burn an equivalent bcrypt comparison to keep timing uniform
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(senha))
		return nil, domain.NewErroAutenticacao("Usuário não encontrado para o email informado.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(senha)); err != nil {
		return nil, domain.NewErroAutenticacao("Senha inválida.")
	}
	return usuario, nil
}

// ObterPorID returns the user with the given ID, or nil when absent
func (s *UsuarioService) ObterPorID(id uint) (*domain.Usuario, error) {
	return s.repo.FindByID(id)
}
