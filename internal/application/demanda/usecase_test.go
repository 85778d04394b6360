package demanda_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmacedo/pca-api/internal/application/demanda"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// ── fakes dos portos ──────────────────────────────────────────────────────────

type fakeDemandaRepo struct {
	demandas map[string]*entity.Demanda
	seq      int64
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
	cp := *d
	return &cp, nil
}

func (f *fakeDemandaRepo) Update(d *entity.Demanda) error {
	cp := *d
	f.demandas[d.ID] = &cp
	return nil
}

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

func (f *fakeDemandaRepo) SoftDelete(id string) error {
	if d, ok := f.demandas[id]; ok {
		d.Ativo = false
	}
	return nil
}

func (f *fakeDemandaRepo) ProximaSequenciaCodigo() (int64, error) {
	f.seq++
	return f.seq, nil
}

type fakePcaRepo struct {
	pcas map[string]*entity.Pca
}

func (f *fakePcaRepo) Create(p *entity.Pca) error { return nil }
func (f *fakePcaRepo) GetByID(id string) (*entity.Pca, error) {
	p, ok := f.pcas[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (f *fakePcaRepo) Update(*entity.Pca) error                  { return nil }
func (f *fakePcaRepo) List(int, int, int) ([]*entity.Pca, error) { return nil, nil }
func (f *fakePcaRepo) Delete(string) error                       { return nil }

type fakeItemRepo struct {
	itens []*entity.Item
}

func (f *fakeItemRepo) Create(*entity.Item) error            { return nil }
func (f *fakeItemRepo) GetByID(string) (*entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) Update(*entity.Item) error            { return nil }

func (f *fakeItemRepo) ListByDemanda(demandaID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.itens {
		if it.DemandaID == demandaID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (f *fakeItemRepo) UpdateValoracao(string, decimal.Decimal, decimal.Decimal) error { return nil }
func (f *fakeItemRepo) Delete(string) error                                            { return nil }

type fakeNotifier struct {
	chamadas []string // "de→para"
	err      error
}

func (f *fakeNotifier) NotificarMudancaStatus(_ context.Context, _, de, para string) error {
	f.chamadas = append(f.chamadas, de+"→"+para)
	return f.err
}

type fakeSink struct {
	registros []*entity.Auditoria
}

func (f *fakeSink) Registrar(_ context.Context, a *entity.Auditoria) {
	f.registros = append(f.registros, a)
}

// ── montagem ──────────────────────────────────────────────────────────────────

type ambiente struct {
	uc          *demanda.UseCase
	demandaRepo *fakeDemandaRepo
	notifier    *fakeNotifier
	sink        *fakeSink
}

func novoAmbiente(situacaoPca string, ds ...*entity.Demanda) *ambiente {
	demandaRepo := newFakeDemandaRepo(ds...)
	pcaRepo := &fakePcaRepo{pcas: map[string]*entity.Pca{
		"pca-1": {ID: "pca-1", Ano: 2026, Situacao: situacaoPca, Versao: 1, Ativo: true},
	}}
	notifier := &fakeNotifier{}
	sink := &fakeSink{}
	uc := demanda.NewUseCase(demandaRepo, pcaRepo, &fakeItemRepo{}, notifier, sink)
	return &ambiente{uc: uc, demandaRepo: demandaRepo, notifier: notifier, sink: sink}
}

func demandaEm(status string) *entity.Demanda {
	return &entity.Demanda{
		ID:     "dem-1",
		PcaID:  "pca-1",
		Codigo: "DM-2026-00001",
		Status: status,
		Ativo:  true,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_GeraCodigoSequencial(t *testing.T) {
	amb := novoAmbiente(entity.PcaEmElaboracao)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		out, err := amb.uc.Create(ctx, "user-1", dto.CreateDemandaRequest{PcaID: "pca-1", Descricao: "aquisição de notebooks"})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("DM-2026-%05d", i), out.Codigo)
		assert.Equal(t, entity.DemandaCadastrada, out.Status)
	}
}

func TestCreate_PcaTerminalRecusa(t *testing.T) {
	amb := novoAmbiente(entity.PcaEncerrado)
	_, err := amb.uc.Create(context.Background(), "user-1", dto.CreateDemandaRequest{PcaID: "pca-1", Descricao: "qualquer"})
	assert.True(t, errors.Is(err, domain.ErrConflitoEstado))
}

func TestCreate_PcaInexistente(t *testing.T) {
	amb := novoAmbiente(entity.PcaEmElaboracao)
	_, err := amb.uc.Create(context.Background(), "user-1", dto.CreateDemandaRequest{PcaID: "ghost", Descricao: "qualquer"})
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}

// ── MudarStatus ───────────────────────────────────────────────────────────────

func TestMudarStatus_TransicaoValidaNotificaEAudita(t *testing.T) {
	amb := novoAmbiente(entity.PcaAprovado, demandaEm(entity.DemandaCadastrada))
	out, err := amb.uc.MudarStatus(context.Background(), "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaEmAnalise})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaEmAnalise, out.Status)

	assert.Equal(t, []string{"CADASTRADA→EM_ANALISE"}, amb.notifier.chamadas)
	require.Len(t, amb.sink.registros, 1)
	reg := amb.sink.registros[0]
	assert.Equal(t, entity.AcaoTransicao, reg.Acao)
	assert.Equal(t, "CADASTRADA", reg.ValorAnterior)
	assert.Equal(t, "EM_ANALISE", reg.ValorNovo)
}

func TestMudarStatus_TransicaoForaDaTabela(t *testing.T) {
	amb := novoAmbiente(entity.PcaAprovado, demandaEm(entity.DemandaCadastrada))
	_, err := amb.uc.MudarStatus(context.Background(), "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaContratada})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransicaoInvalida))

	d, _ := amb.demandaRepo.GetByID("dem-1")
	assert.Equal(t, entity.DemandaCadastrada, d.Status, "status não muda em transição recusada")
	assert.Empty(t, amb.notifier.chamadas)
}

func TestMudarStatus_CancelamentoExigeJustificativa(t *testing.T) {
	amb := novoAmbiente(entity.PcaAprovado, demandaEm(entity.DemandaEmAnalise))
	_, err := amb.uc.MudarStatus(context.Background(), "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaCancelada, Justificativa: "curta"})
	assert.True(t, errors.Is(err, domain.ErrValidacao))

	out, err := amb.uc.MudarStatus(context.Background(), "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaCancelada, Justificativa: "demanda duplicada no plano"})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaCancelada, out.Status)
	assert.Equal(t, "demanda duplicada no plano", out.JustificativaCancelamento)
	require.NotNil(t, out.CanceladaEm)
}

// Falha do colaborador de notificação não bloqueia a transição.
func TestMudarStatus_FalhaDeNotificacaoNaoBloqueia(t *testing.T) {
	amb := novoAmbiente(entity.PcaAprovado, demandaEm(entity.DemandaCadastrada))
	amb.notifier.err = errors.New("smtp fora do ar")

	out, err := amb.uc.MudarStatus(context.Background(), "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaEmAnalise})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaEmAnalise, out.Status)
	require.Len(t, amb.sink.registros, 1, "auditoria é gravada mesmo com notificação falha")
}

// ── Ciclo de contratação ──────────────────────────────────────────────────────

func TestCicloDeContratacao(t *testing.T) {
	amb := novoAmbiente(entity.PcaEmExecucao, demandaEm(entity.DemandaEstimada))
	ctx := context.Background()

	out, err := amb.uc.IniciarContratacao(ctx, "user-1", "dem-1",
		dto.IniciarContratacaoRequest{NumeroProcesso: "PROC-2026/0042"})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaEmContratacao, out.Status)
	assert.Equal(t, "PROC-2026/0042", out.NumeroProcesso)

	// Repetir o comando a partir de EM_CONTRATACAO é recusado.
	_, err = amb.uc.IniciarContratacao(ctx, "user-1", "dem-1",
		dto.IniciarContratacaoRequest{NumeroProcesso: "PROC-2026/0043"})
	assert.True(t, errors.Is(err, domain.ErrTransicaoInvalida))

	dataContrato := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	out, err = amb.uc.FinalizarContrato(ctx, "user-1", "dem-1", dto.FinalizarContratoRequest{
		NumeroContrato:  "CT-2026/0007",
		DataContrato:    dataContrato,
		ValorContratado: decimal.NewFromInt(150000),
		FornecedorCNPJ:  "11222333000181",
		FornecedorNome:  "Fornecedora Alfa Ltda",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaContratada, out.Status)
	assert.Equal(t, "CT-2026/0007", out.NumeroContrato)
	require.NotNil(t, out.ValorContratado)
	assert.True(t, out.ValorContratado.Equal(decimal.NewFromInt(150000)))
	require.NotNil(t, out.DataContrato)
	assert.True(t, out.DataContrato.Equal(dataContrato))

	// CONTRATADA é terminal: nenhuma transição posterior.
	_, err = amb.uc.MudarStatus(ctx, "user-1", "dem-1",
		dto.MudarStatusDemandaRequest{Status: entity.DemandaSuspensa})
	assert.True(t, errors.Is(err, domain.ErrTransicaoInvalida))
}

func TestFinalizarContrato_ForaDeContratacao(t *testing.T) {
	amb := novoAmbiente(entity.PcaEmExecucao, demandaEm(entity.DemandaEstimada))
	_, err := amb.uc.FinalizarContrato(context.Background(), "user-1", "dem-1", dto.FinalizarContratoRequest{
		NumeroContrato:  "CT-1",
		ValorContratado: decimal.NewFromInt(10),
	})
	assert.True(t, errors.Is(err, domain.ErrTransicaoInvalida))
}

func TestFinalizarContrato_ValorNaoPositivo(t *testing.T) {
	amb := novoAmbiente(entity.PcaEmExecucao, demandaEm(entity.DemandaEmContratacao))
	_, err := amb.uc.FinalizarContrato(context.Background(), "user-1", "dem-1", dto.FinalizarContratoRequest{
		NumeroContrato:  "CT-1",
		ValorContratado: decimal.Zero,
	})
	assert.True(t, errors.Is(err, domain.ErrValidacao))
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDelete_SomenteCadastrada(t *testing.T) {
	for _, status := range []string{
		entity.DemandaEmAnalise, entity.DemandaEstimada, entity.DemandaEmContratacao,
		entity.DemandaContratada, entity.DemandaSuspensa, entity.DemandaCancelada,
	} {
		amb := novoAmbiente(entity.PcaAprovado, demandaEm(status))
		err := amb.uc.Delete(context.Background(), "user-1", "dem-1")
		require.Error(t, err, "status %s", status)
		assert.True(t, errors.Is(err, domain.ErrConflitoEstado), "status %s", status)
	}

	amb := novoAmbiente(entity.PcaAprovado, demandaEm(entity.DemandaCadastrada))
	require.NoError(t, amb.uc.Delete(context.Background(), "user-1", "dem-1"))

	d, err := amb.uc.GetByID("dem-1")
	assert.Nil(t, d, "demanda excluída some das consultas")
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}
