package repository

import (
	"errors" // Sentinel error matching

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Association handling on save

	"minhasfinancas/internal/domain" // Domain models
)

// LancamentoRepository persists transaction records
type LancamentoRepository interface {
	Save(lancamento *domain.Lancamento) error                                  // Insert or update, assigns the ID on insert
	FindByID(id uint) (*domain.Lancamento, error)                              // Returns (nil, nil) when absent
	Delete(lancamento *domain.Lancamento) error                                // Removes the record by primary key
	Search(filtro *domain.Lancamento) ([]domain.Lancamento, error)             // Matches the filter's non-zero fields
	SumByUsuarioTipo(usuarioID uint, tipo domain.TipoLancamento) (float64, error) // Aggregate of valor per user and tipo
}

// lancamentoRepository is the GORM-backed implementation
type lancamentoRepository struct {
	db *gorm.DB // Database handle
}

// NewLancamentoRepository builds a transaction store on top of the given database
func NewLancamentoRepository(db *gorm.DB) LancamentoRepository {
	return &lancamentoRepository{db: db}
}

// Save inserts or updates the lançamento record. The loaded Usuario, when
// present, is never written back through this path.
func (r *lancamentoRepository) Save(lancamento *domain.Lancamento) error {
	return r.db.Omit(clause.Associations).Save(lancamento).Error
}

// FindByID fetches a lançamento by primary key
func (r *lancamentoRepository) FindByID(id uint) (*domain.Lancamento, error) {
	var lancamento domain.Lancamento
	if err := r.db.First(&lancamento, id).Error; err != nil {
		// Absent records are an empty result, not an error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lancamento, nil
}

// Delete removes the lançamento record
func (r *lancamentoRepository) Delete(lancamento *domain.Lancamento) error {
	return r.db.Delete(lancamento).Error
}

// Search returns every lançamento matching the filter's non-zero fields:
// descricao as a substring, mes, ano and usuario as exact matches.
// Results come back in store order (primary key).
func (r *lancamentoRepository) Search(filtro *domain.Lancamento) ([]domain.Lancamento, error) {
	query := r.db.Model(&domain.Lancamento{})
	if filtro.UsuarioID != 0 {
		query = query.Where("usuario_id = ?", filtro.UsuarioID)
	}
	if filtro.Descricao != "" {
		query = query.Where("descricao LIKE ?", "%"+filtro.Descricao+"%")
	}
	if filtro.Mes != 0 {
		query = query.Where("mes = ?", filtro.Mes)
	}
	if filtro.Ano != 0 {
		query = query.Where("ano = ?", filtro.Ano)
	}
	var lancamentos []domain.Lancamento
	if err := query.Find(&lancamentos).Error; err != nil {
		return nil, err
	}
	return lancamentos, nil
}

// SumByUsuarioTipo totals the valor of a user's lançamentos of the given tipo.
// Status is not filtered: cancelled entries count toward the total.
func (r *lancamentoRepository) SumByUsuarioTipo(usuarioID uint, tipo domain.TipoLancamento) (float64, error) {
	var total float64
	err := r.db.Model(&domain.Lancamento{}).
		Where("usuario_id = ? AND tipo = ?", usuarioID, tipo).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}
