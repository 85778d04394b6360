package repository

import "github.com/jmacedo/pca-api/internal/domain/entity"

// AnexoRepository define o porto de persistência dos metadados de anexo.
type AnexoRepository interface {
	Create(a *entity.Anexo) error
	GetByID(id string) (*entity.Anexo, error)
	ListByEntidade(tipoEntidade, entidadeID string) ([]*entity.Anexo, error)
	// SoftDelete marca o anexo como inativo; o blob não é removido.
	SoftDelete(id string) error
}
