package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"minhasfinancas/internal/domain"
	"minhasfinancas/internal/middleware"
	"minhasfinancas/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LancamentoAPISuite covers the /api/lancamentos surface
type LancamentoAPISuite struct {
	apiSuite
}

// corpoValido builds a request body that passes every validation rule
func (s *LancamentoAPISuite) corpoValido() map[string]any {
	return map[string]any{
		"descricao": "Salário",
		"mes":       9,
		"ano":       2022,
		"valor":     10,
		"tipo":      "RECEITA",
		"usuario":   s.usuario.ID,
	}
}

func (s *LancamentoAPISuite) TestRotasExigemToken() {
	w := s.do(http.MethodGet, "/api/lancamentos?usuario=1", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/lancamentos", "token-invalido", s.corpoValido())
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *LancamentoAPISuite) TestCriarRetorna201ComIDEStatusPendente() {
	w := s.do(http.MethodPost, "/api/lancamentos", s.token, s.corpoValido())
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var body domain.Lancamento
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotZero(s.T(), body.ID)
	assert.Equal(s.T(), domain.StatusPendente, body.Status)
	assert.Equal(s.T(), s.usuario.ID, body.UsuarioID)
}

func (s *LancamentoAPISuite) TestCriarSemTipoRetorna400() {
	corpo := s.corpoValido()
	delete(corpo, "tipo")

	w := s.do(http.MethodPost, "/api/lancamentos", s.token, corpo)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Informe um Tipo de Lançamento.", w.Body.String())
}

func (s *LancamentoAPISuite) TestCriarComUsuarioInexistenteRetorna400() {
	corpo := s.corpoValido()
	corpo["usuario"] = 999

	w := s.do(http.MethodPost, "/api/lancamentos", s.token, corpo)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Usuário não encontrado para o Id informado.", w.Body.String())
}

func (s *LancamentoAPISuite) TestBuscarExigeUsuarioExistente() {
	w := s.do(http.MethodGet, "/api/lancamentos?usuario=999", s.token, nil)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Não foi possível realizar a consulta. Usuário não encontrado para o Id informado.", w.Body.String())
}

func (s *LancamentoAPISuite) TestBuscarFiltraPorDescricaoMesEAno() {
	s.criarLancamento()
	_, err := s.lancamentos.Salvar(&domain.Lancamento{
		Descricao: "Aluguel", Mes: 10, Ano: 2023, Valor: 80,
		Tipo: domain.TipoDespesa, UsuarioID: s.usuario.ID,
	})
	require.NoError(s.T(), err)

	path := "/api/lancamentos?usuario=" + strconv.Itoa(int(s.usuario.ID)) + "&descricao=Sal&mes=9&ano=2022"
	w := s.do(http.MethodGet, path, s.token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var body []domain.Lancamento
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(s.T(), body, 1)
	assert.Equal(s.T(), "Salário", body[0].Descricao)
}

func (s *LancamentoAPISuite) TestBuscarComMesOuAnoMalformadoRetorna400() {
	base := "/api/lancamentos?usuario=" + strconv.Itoa(int(s.usuario.ID))

	w := s.do(http.MethodGet, base+"&mes=abc", s.token, nil)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Requisição inválida.", w.Body.String())

	w = s.do(http.MethodGet, base+"&ano=vinte22", s.token, nil)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Requisição inválida.", w.Body.String())

	// Absent parameters stay valid: they just mean no filter
	w = s.do(http.MethodGet, base, s.token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *LancamentoAPISuite) TestBuscarServeDoCacheEInvalidaAposEscrita() {
	mr := miniredis.RunT(s.T())
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// A router with the cache wired in, over the same database
	r := gin.New()
	grupo := r.Group("/api/lancamentos")
	grupo.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	grupo.GET("", BuscarLancamentosHandler(s.lancamentos, s.usuarios, rdb))
	grupo.POST("", SalvarLancamentoHandler(s.lancamentos, s.usuarios, rdb))

	s.criarLancamento()
	path := "/api/lancamentos?usuario=" + strconv.Itoa(int(s.usuario.ID))

	// First search misses and fills the cache with a 60 second TTL
	w := s.doOn(r, http.MethodGet, path, s.token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var body []domain.Lancamento
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(s.T(), body, 1)
	chave := utils.LancamentoSearchKey(s.usuario.ID, "", 0, 0)
	require.True(s.T(), mr.Exists(chave))
	assert.Equal(s.T(), 60*time.Second, mr.TTL(chave))

	// A write that bypasses the handlers leaves the cached entry in place
	_, err := s.lancamentos.Salvar(&domain.Lancamento{
		Descricao: "Aluguel", Mes: 9, Ano: 2022, Valor: 80,
		Tipo: domain.TipoDespesa, UsuarioID: s.usuario.ID,
	})
	require.NoError(s.T(), err)
	w = s.doOn(r, http.MethodGet, path, s.token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(s.T(), body, 1, "expected the stale cached result")

	// A write through the handler drops the unfiltered entry
	w = s.doOn(r, http.MethodPost, "/api/lancamentos", s.token, s.corpoValido())
	require.Equal(s.T(), http.StatusCreated, w.Code)
	require.False(s.T(), mr.Exists(chave))

	w = s.doOn(r, http.MethodGet, path, s.token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(s.T(), body, 3)
}

func (s *LancamentoAPISuite) TestBuscarSemResultadosRetornaListaVazia() {
	path := "/api/lancamentos?usuario=" + strconv.Itoa(int(s.usuario.ID))
	w := s.do(http.MethodGet, path, s.token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "[]", w.Body.String())
}

func (s *LancamentoAPISuite) TestAtualizarRetorna200ComMesmoID() {
	salvo := s.criarLancamento()
	corpo := s.corpoValido()
	corpo["descricao"] = "Salário reajustado"
	corpo["valor"] = 15

	w := s.do(http.MethodPut, "/api/lancamentos/"+strconv.Itoa(int(salvo.ID)), s.token, corpo)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var body domain.Lancamento
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), salvo.ID, body.ID)
	assert.Equal(s.T(), "Salário reajustado", body.Descricao)
}

func (s *LancamentoAPISuite) TestAtualizarPreservaDataCadastro() {
	salvo := s.criarLancamento()
	require.False(s.T(), salvo.DataCadastro.IsZero())

	corpo := s.corpoValido()
	corpo["descricao"] = "Salário reajustado"
	w := s.do(http.MethodPut, "/api/lancamentos/"+strconv.Itoa(int(salvo.ID)), s.token, corpo)
	require.Equal(s.T(), http.StatusOK, w.Code)

	// The stored creation date must survive the rewrite
	recarregado, err := s.lancamentos.ObterPorID(salvo.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), recarregado)
	assert.False(s.T(), recarregado.DataCadastro.IsZero())
	assert.WithinDuration(s.T(), salvo.DataCadastro, recarregado.DataCadastro, time.Second)
}

func (s *LancamentoAPISuite) TestAtualizarInexistenteRetorna400() {
	w := s.do(http.MethodPut, "/api/lancamentos/999", s.token, s.corpoValido())
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Lançamento não encontrado na base de dados", w.Body.String())
}

func (s *LancamentoAPISuite) TestAtualizarComCampoInvalidoRetorna400() {
	salvo := s.criarLancamento()
	corpo := s.corpoValido()
	corpo["mes"] = 13

	w := s.do(http.MethodPut, "/api/lancamentos/"+strconv.Itoa(int(salvo.ID)), s.token, corpo)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Informe um Mês válido.", w.Body.String())
}

func (s *LancamentoAPISuite) TestAtualizaStatusRetorna200() {
	salvo := s.criarLancamento()

	w := s.do(http.MethodPut, "/api/lancamentos/"+strconv.Itoa(int(salvo.ID))+"/atualiza-status", s.token,
		map[string]any{"status": "EFETIVADO"})
	require.Equal(s.T(), http.StatusOK, w.Code)

	var body domain.Lancamento
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), domain.StatusEfetivado, body.Status)
}

func (s *LancamentoAPISuite) TestAtualizaStatusComValorDesconhecidoRetorna400() {
	salvo := s.criarLancamento()

	w := s.do(http.MethodPut, "/api/lancamentos/"+strconv.Itoa(int(salvo.ID))+"/atualiza-status", s.token,
		map[string]any{"status": "QUALQUER"})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Não foi possível atualizar o status do lançamento, envie um status válido", w.Body.String())
}

func (s *LancamentoAPISuite) TestDeletarRetorna204EDepois400() {
	salvo := s.criarLancamento()
	path := "/api/lancamentos/" + strconv.Itoa(int(salvo.ID))

	w := s.do(http.MethodDelete, path, s.token, nil)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	// The record is gone; a second delete is a caller error
	w = s.do(http.MethodDelete, path, s.token, nil)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Lançamento não encontrado na base de dados", w.Body.String())
}

func TestLancamentoAPISuite(t *testing.T) {
	suite.Run(t, new(LancamentoAPISuite))
}
