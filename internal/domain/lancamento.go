package domain

import "time"

// TipoLancamento is the transaction category: income or expense
type TipoLancamento string

// Transaction categories
const (
	TipoReceita TipoLancamento = "RECEITA" // Income
	TipoDespesa TipoLancamento = "DESPESA" // Expense
)

// Valido reports whether the tipo is one of the known categories
func (t TipoLancamento) Valido() bool {
	return t == TipoReceita || t == TipoDespesa
}

// StatusLancamento is the lifecycle state of a lançamento
type StatusLancamento string

// Lifecycle states
const (
	StatusPendente  StatusLancamento = "PENDENTE"  // Awaiting confirmation
	StatusEfetivado StatusLancamento = "EFETIVADO" // Confirmed
	StatusCancelado StatusLancamento = "CANCELADO" // Cancelled
)

// Valido reports whether the status is one of the known states
func (s StatusLancamento) Valido() bool {
	return s == StatusPendente || s == StatusEfetivado || s == StatusCancelado
}

// Lancamento Model
type Lancamento struct {
	ID           uint             `gorm:"primaryKey" json:"id"`              // Primary key
	Descricao    string           `json:"descricao"`                         // Description
	Mes          int              `json:"mes"`                               // Month (1-12)
	Ano          int              `json:"ano"`                               // Four digit year
	UsuarioID    uint             `json:"usuario"`                           // Foreign key to the owning Usuario
	Usuario      *Usuario         `gorm:"foreignKey:UsuarioID" json:"-"`     // Owning user, loaded by the service
	Valor        float64          `gorm:"type:decimal(18,2)" json:"valor"`   // Monetary amount
	Tipo         TipoLancamento   `gorm:"size:20" json:"tipo"`               // RECEITA or DESPESA
	Status       StatusLancamento `gorm:"size:20" json:"status"`             // PENDENTE, EFETIVADO or CANCELADO
	DataCadastro time.Time        `gorm:"autoCreateTime" json:"dataCadastro"` // Timestamp of creation
}
