package service

import (
	"strings" // Blank description check

	"minhasfinancas/internal/domain"     // Domain models and errors
	"minhasfinancas/internal/repository" // Store interfaces
)

// LancamentoService orchestrates create/update/delete/status-change and
// filtered search over lançamentos, running field validation before any write
type LancamentoService struct {
	repo repository.LancamentoRepository // Transaction store
}

// NewLancamentoService builds the lançamento service on top of the given store
func NewLancamentoService(repo repository.LancamentoRepository) *LancamentoService {
	return &LancamentoService{repo: repo}
}

// Validar checks the lançamento fields in a fixed order and stops at the
// first violated rule, so the reported message is always the first failure:
// descrição, mês, ano, usuário, valor, tipo.
func (s *LancamentoService) Validar(lancamento *domain.Lancamento) error {
	if strings.TrimSpace(lancamento.Descricao) == "" {
		return domain.NewRegraNegocio("Informe uma Descrição válida.")
	}
	if lancamento.Mes < 1 || lancamento.Mes > 12 {
		return domain.NewRegraNegocio("Informe um Mês válido.")
	}
	// Ano must have exactly four digits
	if lancamento.Ano < 1000 || lancamento.Ano > 9999 {
		return domain.NewRegraNegocio("Informe um Ano válido.")
	}
	// Keep the foreign key in sync when the owner came in as a struct
	if lancamento.Usuario != nil && lancamento.UsuarioID == 0 {
		lancamento.UsuarioID = lancamento.Usuario.ID
	}
	// An unpersisted owner still has a zero ID
	if lancamento.UsuarioID == 0 {
		return domain.NewRegraNegocio("Informe um Usuário válido.")
	}
	if lancamento.Valor <= 0 {
		return domain.NewRegraNegocio("Informe um Valor válido.")
	}
	if !lancamento.Tipo.Valido() {
		return domain.NewRegraNegocio("Informe um Tipo de Lançamento.")
	}
	return nil
}

// Salvar validates and persists a new lançamento. Status defaults to
// PENDENTE when the caller left it empty. Nothing is written on a
// validation failure.
func (s *LancamentoService) Salvar(lancamento *domain.Lancamento) (*domain.Lancamento, error) {
	if err := s.Validar(lancamento); err != nil {
		return nil, err
	}
	if lancamento.Status == "" {
		lancamento.Status = domain.StatusPendente
	}
	if err := s.repo.Save(lancamento); err != nil {
		return nil, err
	}
	return lancamento, nil
}

// Atualizar re-validates and persists an existing lançamento. A record that
// was never saved (zero ID) is rejected before any store call.
func (s *LancamentoService) Atualizar(lancamento *domain.Lancamento) (*domain.Lancamento, error) {
	if lancamento.ID == 0 {
		return nil, domain.NewRegraNegocio("Não é possível atualizar um lançamento que ainda não foi salvo.")
	}
	if err := s.Validar(lancamento); err != nil {
		return nil, err
	}
	if err := s.repo.Save(lancamento); err != nil {
		return nil, err
	}
	return lancamento, nil
}

// AtualizarStatus sets the status and delegates to Atualizar. Full field
// validation runs again on purpose, not just a status check.
func (s *LancamentoService) AtualizarStatus(lancamento *domain.Lancamento, status domain.StatusLancamento) (*domain.Lancamento, error) {
	lancamento.Status = status
	return s.Atualizar(lancamento)
}

// Deletar removes an existing lançamento. A record that was never saved
// (zero ID) is rejected before any store call.
func (s *LancamentoService) Deletar(lancamento *domain.Lancamento) error {
	if lancamento.ID == 0 {
		return domain.NewRegraNegocio("Não é possível deletar um lançamento que ainda não foi salvo.")
	}
	return s.repo.Delete(lancamento)
}

// Buscar returns every lançamento matching the filter's non-zero fields
func (s *LancamentoService) Buscar(filtro *domain.Lancamento) ([]domain.Lancamento, error) {
	return s.repo.Search(filtro)
}

// ObterPorID returns the lançamento with the given ID, or nil when absent
func (s *LancamentoService) ObterPorID(id uint) (*domain.Lancamento, error) {
	return s.repo.FindByID(id)
}

// ObterSaldoPorUsuario derives the user's balance on demand: receitas minus
// despesas over every lançamento of the user, regardless of status.
func (s *LancamentoService) ObterSaldoPorUsuario(usuarioID uint) (float64, error) {
	receitas, err := s.repo.SumByUsuarioTipo(usuarioID, domain.TipoReceita)
	if err != nil {
		return 0, err
	}
	despesas, err := s.repo.SumByUsuarioTipo(usuarioID, domain.TipoDespesa)
	if err != nil {
		return 0, err
	}
	return receitas - despesas, nil
}
