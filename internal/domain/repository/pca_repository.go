package repository

import "github.com/jmacedo/pca-api/internal/domain/entity"

// PcaRepository define o porto de persistência para Pca (DIP).
type PcaRepository interface {
	Create(pca *entity.Pca) error
	GetByID(id string) (*entity.Pca, error)
	Update(pca *entity.Pca) error
	// List devolve planos ativos; ano = 0 lista todos os anos.
	List(ano int, limit, offset int) ([]*entity.Pca, error)
	// Delete remove fisicamente o plano (permitido apenas sem demandas).
	Delete(id string) error
}
