package preco

import (
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/estatistica"
	"github.com/jmacedo/pca-api/internal/domain/repository"
	"github.com/jmacedo/pca-api/pkg/metrics"
)

// Valorador recalcula a valoração de um item a partir dos preços ativos:
// valor unitário estimado = mediana (escolha de negócio, não a média),
// valor total = mediana × quantidade, e grava classificação + variação em
// cada preço. Disparado sincronamente após qualquer mutação de preço.
type Valorador struct {
	precoRepo repository.PrecoRepository
	itemRepo  repository.ItemRepository
}

// NewValorador constrói o atualizador de valoração.
func NewValorador(precoRepo repository.PrecoRepository, itemRepo repository.ItemRepository) *Valorador {
	return &Valorador{precoRepo: precoRepo, itemRepo: itemRepo}
}

// Revalorar executa o recálculo para um item. Conjunto vazio de preços não
// zera os valores estimados anteriores: a última valoração conhecida permanece.
func (v *Valorador) Revalorar(itemID string) (*estatistica.Resultado, error) {
	precos, err := v.precoRepo.ListAtivosByItem(itemID)
	if err != nil {
		metrics.Revaloracoes.WithLabelValues("erro").Inc()
		return nil, err
	}
	if len(precos) == 0 {
		metrics.Revaloracoes.WithLabelValues("vazio").Inc()
		return nil, nil
	}

	valores := make([]decimal.Decimal, 0, len(precos))
	for _, p := range precos {
		valores = append(valores, p.ValorUnitario)
	}
	res := estatistica.Calcular(valores)

	item, err := v.itemRepo.GetByID(itemID)
	if err != nil {
		metrics.Revaloracoes.WithLabelValues("erro").Inc()
		return nil, err
	}
	if item == nil {
		metrics.Revaloracoes.WithLabelValues("erro").Inc()
		return nil, domain.ErrNaoEncontrado
	}

	total := res.Mediana.Mul(item.Quantidade)
	if err := v.itemRepo.UpdateValoracao(itemID, res.Mediana, total); err != nil {
		metrics.Revaloracoes.WithLabelValues("erro").Inc()
		return nil, err
	}

	for _, p := range precos {
		c := res.Classificar(p.ValorUnitario)
		if err := v.precoRepo.UpdateClassificacao(p.ID, c.Classificacao, c.PercentualVariacao); err != nil {
			metrics.Revaloracoes.WithLabelValues("erro").Inc()
			return nil, err
		}
	}
	metrics.Revaloracoes.WithLabelValues("ok").Inc()
	return res, nil
}
