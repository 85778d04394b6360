package pca_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/pca"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// ── fakes dos portos ──────────────────────────────────────────────────────────

type fakePcaRepo struct {
	pcas map[string]*entity.Pca
}

func newFakePcaRepo(ps ...*entity.Pca) *fakePcaRepo {
	f := &fakePcaRepo{pcas: map[string]*entity.Pca{}}
	for _, p := range ps {
		cp := *p
		f.pcas[p.ID] = &cp
	}
	return f
}

func (f *fakePcaRepo) Create(p *entity.Pca) error {
	cp := *p
	f.pcas[p.ID] = &cp
	return nil
}

func (f *fakePcaRepo) GetByID(id string) (*entity.Pca, error) {
	p, ok := f.pcas[id]
	if !ok || !p.Ativo {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePcaRepo) Update(p *entity.Pca) error {
	cp := *p
	f.pcas[p.ID] = &cp
	return nil
}

func (f *fakePcaRepo) List(ano, limit, offset int) ([]*entity.Pca, error) {
	var out []*entity.Pca
	for _, p := range f.pcas {
		if p.Ativo && (ano == 0 || p.Ano == ano) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePcaRepo) Delete(id string) error {
	delete(f.pcas, id)
	return nil
}

type fakeDemandaRepo struct {
	demandas map[string]*entity.Demanda
}

func newFakeDemandaRepo(ds ...*entity.Demanda) *fakeDemandaRepo {
	f := &fakeDemandaRepo{demandas: map[string]*entity.Demanda{}}
	for _, d := range ds {
		cp := *d
		f.demandas[d.ID] = &cp
	}
	return f
}

func (f *fakeDemandaRepo) Create(d *entity.Demanda) error {
	cp := *d
	f.demandas[d.ID] = &cp
	return nil
}

func (f *fakeDemandaRepo) GetByID(id string) (*entity.Demanda, error) {
	d, ok := f.demandas[id]
	if !ok || !d.Ativo {
		return nil, nil
	}
	return d, nil
}

func (f *fakeDemandaRepo) Update(d *entity.Demanda) error { return nil }

func (f *fakeDemandaRepo) ListByPca(pcaID string, limit, offset int) ([]*entity.Demanda, error) {
	var out []*entity.Demanda
	for _, d := range f.demandas {
		if d.PcaID == pcaID && d.Ativo {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeDemandaRepo) CountByPca(pcaID string) (int, error) {
	n := 0
	for _, d := range f.demandas {
		if d.PcaID == pcaID && d.Ativo {
			n++
		}
	}
	return n, nil
}

func (f *fakeDemandaRepo) SoftDelete(id string) error             { return nil }
func (f *fakeDemandaRepo) ProximaSequenciaCodigo() (int64, error) { return 1, nil }

type fakeItemRepo struct {
	itens map[string]*entity.Item
}

func newFakeItemRepo(its ...*entity.Item) *fakeItemRepo {
	f := &fakeItemRepo{itens: map[string]*entity.Item{}}
	for _, it := range its {
		cp := *it
		f.itens[it.ID] = &cp
	}
	return f
}

func (f *fakeItemRepo) Create(it *entity.Item) error {
	cp := *it
	f.itens[it.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(string) (*entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) Update(*entity.Item) error            { return nil }

func (f *fakeItemRepo) ListByDemanda(demandaID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.itens {
		if it.DemandaID == demandaID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) UpdateValoracao(string, decimal.Decimal, decimal.Decimal) error { return nil }
func (f *fakeItemRepo) Delete(string) error                                            { return nil }

// fakeTxRunner executa o callback de versionamento com os próprios fakes.
type fakeTxRunner struct {
	pcaRepo     *fakePcaRepo
	demandaRepo *fakeDemandaRepo
	itemRepo    *fakeItemRepo
}

func (f *fakeTxRunner) RunVersionamento(_ context.Context, fn func(
	repository.PcaRepository, repository.DemandaRepository, repository.ItemRepository) error) error {
	return fn(f.pcaRepo, f.demandaRepo, f.itemRepo)
}

type fakeSink struct {
	registros []*entity.Auditoria
}

func (f *fakeSink) Registrar(_ context.Context, a *entity.Auditoria) {
	f.registros = append(f.registros, a)
}

// ── montagem ──────────────────────────────────────────────────────────────────

type ambiente struct {
	uc          *pca.UseCase
	pcaRepo     *fakePcaRepo
	demandaRepo *fakeDemandaRepo
	itemRepo    *fakeItemRepo
	sink        *fakeSink
}

func novoAmbiente(pcas []*entity.Pca, demandas []*entity.Demanda, itens []*entity.Item) *ambiente {
	pcaRepo := newFakePcaRepo(pcas...)
	demandaRepo := newFakeDemandaRepo(demandas...)
	itemRepo := newFakeItemRepo(itens...)
	sink := &fakeSink{}
	uc := pca.NewUseCase(pcaRepo, demandaRepo, itemRepo,
		&fakeTxRunner{pcaRepo: pcaRepo, demandaRepo: demandaRepo, itemRepo: itemRepo}, sink)
	return &ambiente{uc: uc, pcaRepo: pcaRepo, demandaRepo: demandaRepo, itemRepo: itemRepo, sink: sink}
}

func planoEm(situacao string) *entity.Pca {
	return &entity.Pca{ID: "pca-1", Ano: 2026, NumeroPlano: "PCA-001", Versao: 1, Situacao: situacao, Ativo: true}
}

// ── Create / MudarSituacao ────────────────────────────────────────────────────

func TestCreate_ComecaNaVersaoUm(t *testing.T) {
	amb := novoAmbiente(nil, nil, nil)
	out, err := amb.uc.Create(context.Background(), "user-1", dto.CreatePcaRequest{
		Ano: 2026, NumeroPlano: "PCA-001", Responsavel: "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Versao)
	assert.Equal(t, entity.PcaEmElaboracao, out.Situacao)
	assert.Empty(t, out.VersaoAnteriorID)
}

func TestCreate_AnoForaDoIntervalo(t *testing.T) {
	amb := novoAmbiente(nil, nil, nil)
	for _, ano := range []int{1999, 2101} {
		_, err := amb.uc.Create(context.Background(), "user-1", dto.CreatePcaRequest{Ano: ano, NumeroPlano: "X"})
		assert.True(t, errors.Is(err, domain.ErrValidacao), "ano %d", ano)
	}
}

func TestMudarSituacao_TerminalSomenteLeitura(t *testing.T) {
	for _, situacao := range []string{entity.PcaEncerrado, entity.PcaCancelado} {
		amb := novoAmbiente([]*entity.Pca{planoEm(situacao)}, nil, nil)
		_, err := amb.uc.MudarSituacao(context.Background(), "user-1", "pca-1",
			dto.MudarSituacaoPcaRequest{Situacao: entity.PcaEmExecucao})
		assert.True(t, errors.Is(err, domain.ErrConflitoEstado), "situação %s", situacao)
	}
}

func TestMudarSituacao_DestinoDesconhecido(t *testing.T) {
	amb := novoAmbiente([]*entity.Pca{planoEm(entity.PcaAprovado)}, nil, nil)
	_, err := amb.uc.MudarSituacao(context.Background(), "user-1", "pca-1",
		dto.MudarSituacaoPcaRequest{Situacao: "RASCUNHO"})
	assert.True(t, errors.Is(err, domain.ErrValidacao))
}

// ── NovaVersao ────────────────────────────────────────────────────────────────

func TestNovaVersao_MotivoCurtoRecusado(t *testing.T) {
	amb := novoAmbiente([]*entity.Pca{planoEm(entity.PcaAprovado)}, nil, nil)
	_, err := amb.uc.NovaVersao(context.Background(), "user-1", "pca-1",
		dto.NovaVersaoPcaRequest{Motivo: "ajuste   "})
	assert.True(t, errors.Is(err, domain.ErrValidacao))
}

func TestNovaVersao_SomenteAprovadoOuEmExecucao(t *testing.T) {
	for _, situacao := range []string{entity.PcaEmElaboracao, entity.PcaRevisado, entity.PcaEncerrado, entity.PcaCancelado} {
		amb := novoAmbiente([]*entity.Pca{planoEm(situacao)}, nil, nil)
		_, err := amb.uc.NovaVersao(context.Background(), "user-1", "pca-1",
			dto.NovaVersaoPcaRequest{Motivo: "revisão orçamentária anual"})
		require.Error(t, err, "situação %s", situacao)
		assert.True(t, errors.Is(err, domain.ErrConflitoEstado), "situação %s", situacao)
	}
}

// Versionar copia as demandas ativas (códigos preservados) e seus itens para a
// nova revisão, que nasce em EM_ELABORACAO apontando para a versão anterior.
func TestNovaVersao_CopiaDemandasEItens(t *testing.T) {
	qtd := decimal.NewFromInt(10)
	unit := decimal.NewFromInt(5500)
	total := decimal.NewFromInt(55000)
	demandas := []*entity.Demanda{
		{ID: "dem-1", PcaID: "pca-1", Codigo: "DM-2026-00001", Status: entity.DemandaEstimada, Ativo: true},
		{ID: "dem-2", PcaID: "pca-1", Codigo: "DM-2026-00002", Status: entity.DemandaCadastrada, Ativo: true},
		{ID: "dem-3", PcaID: "pca-1", Codigo: "DM-2026-00003", Status: entity.DemandaCancelada, Ativo: false}, // excluída, não copia
	}
	itens := []*entity.Item{
		{ID: "item-1", DemandaID: "dem-1", Descricao: "notebook", Quantidade: qtd, ValorUnitarioEstimado: &unit, ValorTotalEstimado: &total},
	}
	amb := novoAmbiente([]*entity.Pca{planoEm(entity.PcaEmExecucao)}, demandas, itens)

	out, err := amb.uc.NovaVersao(context.Background(), "user-1", "pca-1",
		dto.NovaVersaoPcaRequest{Motivo: "revisão orçamentária anual"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Versao)
	assert.Equal(t, entity.PcaEmElaboracao, out.Situacao)
	assert.Equal(t, "pca-1", out.VersaoAnteriorID)
	assert.Equal(t, 2026, out.Ano)

	copiadas, err := amb.demandaRepo.ListByPca(out.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, copiadas, 2, "apenas demandas ativas são copiadas")

	codigos := map[string]*entity.Demanda{}
	for _, d := range copiadas {
		assert.NotEqual(t, "dem-1", d.ID)
		assert.NotEqual(t, "dem-2", d.ID)
		codigos[d.Codigo] = d
	}
	require.Contains(t, codigos, "DM-2026-00001", "código imutável preservado entre versões")
	require.Contains(t, codigos, "DM-2026-00002")
	assert.Equal(t, entity.DemandaEstimada, codigos["DM-2026-00001"].Status, "status acompanha a cópia")

	itensCopiados, err := amb.itemRepo.ListByDemanda(codigos["DM-2026-00001"].ID)
	require.NoError(t, err)
	require.Len(t, itensCopiados, 1)
	assert.Equal(t, "notebook", itensCopiados[0].Descricao)
	require.NotNil(t, itensCopiados[0].ValorUnitarioEstimado)
	assert.True(t, itensCopiados[0].ValorUnitarioEstimado.Equal(unit), "valoração viaja com a cópia")

	// Original permanece intocado.
	anterior, err := amb.uc.GetByID("pca-1")
	require.NoError(t, err)
	assert.Equal(t, 1, anterior.Versao)
	assert.Equal(t, entity.PcaEmExecucao, anterior.Situacao)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDelete_RecusadoComDemandas(t *testing.T) {
	demandas := []*entity.Demanda{{ID: "dem-1", PcaID: "pca-1", Codigo: "DM-2026-00001", Status: entity.DemandaCadastrada, Ativo: true}}
	amb := novoAmbiente([]*entity.Pca{planoEm(entity.PcaEmElaboracao)}, demandas, nil)

	err := amb.uc.Delete(context.Background(), "user-1", "pca-1", "criado por engano")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflitoEstado))

	_, err = amb.uc.GetByID("pca-1")
	assert.NoError(t, err, "plano permanece após exclusão recusada")
}

func TestDelete_SemDemandas(t *testing.T) {
	amb := novoAmbiente([]*entity.Pca{planoEm(entity.PcaEmElaboracao)}, nil, nil)
	require.NoError(t, amb.uc.Delete(context.Background(), "user-1", "pca-1", "criado por engano"))

	_, err := amb.uc.GetByID("pca-1")
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}
