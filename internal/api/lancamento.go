package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query and path parameter conversion
	"time"     // Cache TTL

	"minhasfinancas/internal/domain"  // Domain models and errors
	"minhasfinancas/internal/service" // Service layer
	"minhasfinancas/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// LancamentoRequest carries the create and update bodies. Field checks live
// in the service, so nothing here is marked required.
type LancamentoRequest struct {
	Descricao string  `json:"descricao"` // Description
	Mes       int     `json:"mes"`       // Month (1-12)
	Ano       int     `json:"ano"`       // Four digit year
	Valor     float64 `json:"valor"`     // Monetary amount
	Tipo      string  `json:"tipo"`      // RECEITA or DESPESA
	Status    string  `json:"status"`    // Optional, defaults to PENDENTE on create
	Usuario   uint    `json:"usuario"`   // Owning user's ID
}

// AtualizaStatusRequest carries the status-only update body
type AtualizaStatusRequest struct {
	Status string `json:"status"` // New lifecycle state
}

// converterLancamento resolves the owning user and maps the request onto a
// domain record. The owner is resolved before field validation runs, so an
// unknown usuario fails here regardless of the other fields.
func converterLancamento(req *LancamentoRequest, usuarios *service.UsuarioService) (*domain.Lancamento, error) {
	usuario, err := usuarios.ObterPorID(req.Usuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.NewRegraNegocio("Usuário não encontrado para o Id informado.")
	}
	return &domain.Lancamento{
		Descricao: req.Descricao,
		Mes:       req.Mes,
		Ano:       req.Ano,
		Valor:     req.Valor,
		Tipo:      domain.TipoLancamento(req.Tipo),
		Status:    domain.StatusLancamento(req.Status),
		UsuarioID: usuario.ID,
		Usuario:   usuario,
	}, nil
}

// parseOptionalInt parses an optional numeric query parameter. An absent
// parameter means no filter; a present but malformed one is a client error.
func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// invalidarCacheBusca drops the user's unfiltered search entry after a
// write. Filtered variants are left to expire by TTL.
func invalidarCacheBusca(rdb *redis.Client, usuarioID uint) {
	if rdb == nil {
		return
	}
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, utils.LancamentoSearchKey(usuarioID, "", 0, 0))
}

// BuscarLancamentosHandler runs the filtered search. The owning user must
// exist, otherwise the query fails with a client error rather than an empty
// list.
func BuscarLancamentosHandler(lancamentos *service.LancamentoService, usuarios *service.UsuarioService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idUsuario, err := strconv.Atoi(c.Query("usuario")) // Required query parameter
		if err != nil || idUsuario <= 0 {
			c.String(http.StatusBadRequest, "Não foi possível realizar a consulta. Usuário não encontrado para o Id informado.")
			return
		}
		usuario, err := usuarios.ObterPorID(uint(idUsuario))
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if usuario == nil {
			c.String(http.StatusBadRequest, "Não foi possível realizar a consulta. Usuário não encontrado para o Id informado.")
			return
		}
		descricao := c.Query("descricao") // Substring filter, optional
		mes, err := parseOptionalInt(c.Query("mes")) // Exact month filter, optional
		if err != nil {
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		ano, err := parseOptionalInt(c.Query("ano")) // Exact year filter, optional
		if err != nil {
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		cacheKey := utils.LancamentoSearchKey(usuario.ID, descricao, mes, ano)
		ctx := context.Background()
		// Serve from cache when a fresh entry exists
		if rdb != nil {
			var cached []domain.Lancamento
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		filtro := &domain.Lancamento{
			Descricao: descricao,
			Mes:       mes,
			Ano:       ano,
			UsuarioID: usuario.ID,
		}
		resultado, err := lancamentos.Buscar(filtro)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if resultado == nil {
			resultado = []domain.Lancamento{} // Empty list, not null
		}
		// Cache the result for 60 seconds
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resultado, 60*time.Second)
		}
		c.JSON(http.StatusOK, resultado)
	}
}

// SalvarLancamentoHandler creates a lançamento after validation
func SalvarLancamentoHandler(lancamentos *service.LancamentoService, usuarios *service.UsuarioService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LancamentoRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		entidade, err := converterLancamento(&req, usuarios)
		if err != nil {
			writeBusinessError(c, err) // Owner not found
			return
		}
		salvo, err := lancamentos.Salvar(entidade)
		if err != nil {
			writeBusinessError(c, err) // Field validation failure, nothing written
			return
		}
		// Log the write with structured fields
		logrus.WithFields(logrus.Fields{
			"lancamento_id": salvo.ID,
			"usuario_id":    salvo.UsuarioID,
			"tipo":          salvo.Tipo,
			"valor":         salvo.Valor,
		}).Info("Lançamento criado")
		invalidarCacheBusca(rdb, salvo.UsuarioID) // Drop stale search results
		c.JSON(http.StatusCreated, salvo)
	}
}

// AtualizarLancamentoHandler updates an existing lançamento in place
func AtualizarLancamentoHandler(lancamentos *service.LancamentoService, usuarios *service.UsuarioService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil || id <= 0 {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados")
			return
		}
		existente, err := lancamentos.ObterPorID(uint(id))
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if existente == nil {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados")
			return
		}
		var req LancamentoRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		entidade, err := converterLancamento(&req, usuarios)
		if err != nil {
			writeBusinessError(c, err) // Owner not found
			return
		}
		entidade.ID = existente.ID                     // Update keeps the identifier
		entidade.DataCadastro = existente.DataCadastro // and the original creation date
		atualizado, err := lancamentos.Atualizar(entidade)
		if err != nil {
			writeBusinessError(c, err) // Field validation failure
			return
		}
		logrus.WithFields(logrus.Fields{
			"lancamento_id": atualizado.ID,
			"usuario_id":    atualizado.UsuarioID,
		}).Info("Lançamento atualizado")
		invalidarCacheBusca(rdb, atualizado.UsuarioID) // Drop stale search results
		c.JSON(http.StatusOK, atualizado)
	}
}

// AtualizaStatusHandler changes only the status of a lançamento. The update
// path re-runs full field validation.
func AtualizaStatusHandler(lancamentos *service.LancamentoService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil || id <= 0 {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados.")
			return
		}
		var req AtualizaStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Requisição inválida.")
			return
		}
		status := domain.StatusLancamento(req.Status)
		if !status.Valido() {
			c.String(http.StatusBadRequest, "Não foi possível atualizar o status do lançamento, envie um status válido")
			return
		}
		existente, err := lancamentos.ObterPorID(uint(id))
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if existente == nil {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados.")
			return
		}
		atualizado, err := lancamentos.AtualizarStatus(existente, status)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"lancamento_id": atualizado.ID,
			"usuario_id":    atualizado.UsuarioID,
			"status":        atualizado.Status,
		}).Info("Status do lançamento atualizado")
		invalidarCacheBusca(rdb, atualizado.UsuarioID) // Drop stale search results
		c.JSON(http.StatusOK, atualizado)
	}
}

// DeletarLancamentoHandler removes an existing lançamento
func DeletarLancamentoHandler(lancamentos *service.LancamentoService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
		if err != nil || id <= 0 {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados")
			return
		}
		existente, err := lancamentos.ObterPorID(uint(id))
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		if existente == nil {
			c.String(http.StatusBadRequest, "Lançamento não encontrado na base de dados")
			return
		}
		if err := lancamentos.Deletar(existente); err != nil {
			writeBusinessError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"lancamento_id": existente.ID,
			"usuario_id":    existente.UsuarioID,
		}).Info("Lançamento removido")
		invalidarCacheBusca(rdb, existente.UsuarioID) // Drop stale search results
		c.Status(http.StatusNoContent)
	}
}
