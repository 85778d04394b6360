package repository

import "github.com/jmacedo/pca-api/internal/domain/entity"

// DemandaRepository define o porto de persistência para Demanda.
// Leituras filtram demandas inativas (tombstone Ativo), salvo indicação contrária.
type DemandaRepository interface {
	Create(demanda *entity.Demanda) error
	GetByID(id string) (*entity.Demanda, error)
	Update(demanda *entity.Demanda) error
	// ListByPca lista demandas ativas do plano; limit ≤ 0 devolve todas.
	ListByPca(pcaID string, limit, offset int) ([]*entity.Demanda, error)
	// CountByPca conta demandas ativas do plano (guarda de exclusão do PCA).
	CountByPca(pcaID string) (int, error)
	// SoftDelete marca a demanda como inativa (tombstone), nunca remove a linha.
	SoftDelete(id string) error
	// ProximaSequenciaCodigo devolve o próximo valor da sequência usada na
	// geração do código imutável "DM-<ano>-<seq>".
	ProximaSequenciaCodigo() (int64, error)
}
