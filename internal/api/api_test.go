package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"

	"minhasfinancas/internal/domain"
	"minhasfinancas/internal/middleware"
	"minhasfinancas/internal/repository"
	"minhasfinancas/internal/service"
	"minhasfinancas/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// apiSuite wires the handlers onto a router exactly like the server does,
// backed by an in-memory database and with Redis absent.
type apiSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	usuarios    *service.UsuarioService
	lancamentos *service.LancamentoService
	usuario     *domain.Usuario // Seeded user
	token       string          // Bearer token for the seeded user
}

// SetupTest runs before each test
func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(s.T(), err, "failed to open test database")
	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(s.T(), db.AutoMigrate(&domain.Usuario{}, &domain.Lancamento{}))
	s.db = db

	s.usuarios = service.NewUsuarioService(repository.NewUsuarioRepository(db))
	s.lancamentos = service.NewLancamentoService(repository.NewLancamentoRepository(db))

	r := gin.New()
	usuarioGroup := r.Group("/api/usuarios")
	usuarioGroup.POST("", SalvarUsuarioHandler(s.usuarios))
	usuarioGroup.POST("/autenticar", AutenticarHandler(s.usuarios, testJWTSecret))
	usuarioGroup.GET("/:id/saldo", ObterSaldoHandler(s.usuarios, s.lancamentos))

	lancamentoGroup := r.Group("/api/lancamentos")
	lancamentoGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	lancamentoGroup.GET("", BuscarLancamentosHandler(s.lancamentos, s.usuarios, nil))
	lancamentoGroup.POST("", SalvarLancamentoHandler(s.lancamentos, s.usuarios, nil))
	lancamentoGroup.PUT("/:id", AtualizarLancamentoHandler(s.lancamentos, s.usuarios, nil))
	lancamentoGroup.PUT("/:id/atualiza-status", AtualizaStatusHandler(s.lancamentos, nil))
	lancamentoGroup.DELETE("/:id", DeletarLancamentoHandler(s.lancamentos, nil))
	s.router = r

	// Seed a user and a matching token
	usuario, err := s.usuarios.SalvarUsuario(&domain.Usuario{Nome: "Fulano", Email: "fulano@email.com", Senha: "senha123"})
	require.NoError(s.T(), err)
	s.usuario = usuario
	token, err := utils.GenerateJWT(usuario.ID, usuario.Nome, testJWTSecret)
	require.NoError(s.T(), err)
	s.token = token
}

// do performs a request against the suite's router
func (s *apiSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	return s.doOn(s.router, method, path, token, body)
}

// doOn performs a request against an arbitrary router
func (s *apiSuite) doOn(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// criarLancamento persists a valid lançamento for the seeded user
func (s *apiSuite) criarLancamento() *domain.Lancamento {
	salvo, err := s.lancamentos.Salvar(&domain.Lancamento{
		Descricao: "Salário",
		Mes:       9,
		Ano:       2022,
		Valor:     10,
		Tipo:      domain.TipoReceita,
		UsuarioID: s.usuario.ID,
	})
	require.NoError(s.T(), err)
	return salvo
}
