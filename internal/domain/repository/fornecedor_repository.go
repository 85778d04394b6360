package repository

import "github.com/jmacedo/pca-api/internal/domain/entity"

// FornecedorRepository define o porto de persistência para Fornecedor.
type FornecedorRepository interface {
	Create(f *entity.Fornecedor) error
	GetByID(id string) (*entity.Fornecedor, error)
	GetByCNPJ(cnpj string) (*entity.Fornecedor, error)
	Update(f *entity.Fornecedor) error
	List(limit, offset int) ([]*entity.Fornecedor, error)
	// SoftDelete marca o fornecedor como inativo.
	SoftDelete(id string) error
}
