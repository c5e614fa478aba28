package api

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes
	"strconv"  // Path parameter conversion

	"minhasfinancas/internal/domain"  // Domain models and errors
	"minhasfinancas/internal/service" // Service layer
	"minhasfinancas/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// UsuarioRequest carries the registration and authentication bodies
type UsuarioRequest struct {
	Nome  string `json:"nome"`                    // Display name, used on registration
	Email string `json:"email" binding:"required"` // Email must be provided
	Senha string `json:"senha" binding:"required"` // Raw password must be provided
}

// TokenResponse is returned by a successful authentication
type TokenResponse struct {
	Nome  string `json:"nome"`  // Authenticated user's name
	Token string `json:"token"` // Signed JWT
}

// writeBusinessError maps the domain error kinds to a 400 response carrying
// the message as a plain-text body; anything else surfaces as a 500.
func writeBusinessError(c *gin.Context, err error) {
	var regra *domain.RegraNegocioError
	var autenticacao *domain.ErroAutenticacao
	switch {
	case errors.As(err, &regra):
		c.String(http.StatusBadRequest, regra.Message)
	case errors.As(err, &autenticacao):
		c.String(http.StatusBadRequest, autenticacao.Message)
	default:
		c.String(http.StatusInternalServerError, "Erro interno.")
	}
}

// SalvarUsuarioHandler registers a new user
func SalvarUsuarioHandler(usuarios *service.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UsuarioRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		usuario := &domain.Usuario{Nome: req.Nome, Email: req.Email, Senha: req.Senha}
		salvo, err := usuarios.SalvarUsuario(usuario)
		if err != nil {
			writeBusinessError(c, err) // Duplicate or malformed email
			return
		}
		c.JSON(http.StatusCreated, salvo) // Senha is excluded from the JSON shape
	}
}

// AutenticarHandler authenticates a user and returns the name plus a JWT
func AutenticarHandler(usuarios *service.UsuarioService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UsuarioRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		usuario, err := usuarios.Autenticar(req.Email, req.Senha)
		if err != nil {
			writeBusinessError(c, err) // Unknown email or wrong password
			return
		}
		// Issue the token carrying the user's ID and name
		token, err := utils.GenerateJWT(usuario.ID, usuario.Nome, jwtSecret)
		if err != nil {
			c.String(http.StatusInternalServerError, "Erro ao gerar o token.")
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Nome: usuario.Nome, Token: token})
	}
}

// ObterSaldoHandler returns the user's derived balance
func ObterSaldoHandler(usuarios *service.UsuarioService, lancamentos *service.LancamentoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil || id <= 0 {
			c.Status(http.StatusNotFound) // A malformed ID matches no user
			return
		}
		usuario, err := usuarios.ObterPorID(uint(id))
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if usuario == nil {
			c.Status(http.StatusNotFound) // No such user
			return
		}
		// Computed on demand, never cached
		saldo, err := lancamentos.ObterSaldoPorUsuario(usuario.ID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		c.JSON(http.StatusOK, saldo)
	}
}
