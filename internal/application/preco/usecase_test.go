package preco_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/preco"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// ── fakes dos portos ──────────────────────────────────────────────────────────

type fakePrecoRepo struct {
	precos  map[string]*entity.Preco
	listErr error
}

func newFakePrecoRepo() *fakePrecoRepo {
	return &fakePrecoRepo{precos: map[string]*entity.Preco{}}
}

func (f *fakePrecoRepo) Create(p *entity.Preco) error {
	cp := *p
	f.precos[p.ID] = &cp
	return nil
}

func (f *fakePrecoRepo) GetByID(id string) (*entity.Preco, error) {
	p, ok := f.precos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrecoRepo) Update(p *entity.Preco) error {
	cp := *p
	f.precos[p.ID] = &cp
	return nil
}

func (f *fakePrecoRepo) ListAtivosByItem(itemID string) ([]*entity.Preco, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.Preco
	for _, p := range f.precos {
		if p.ItemID == itemID && p.Ativo {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePrecoRepo) UpdateClassificacao(id, classificacao string, variacao decimal.Decimal) error {
	p, ok := f.precos[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	p.Classificacao = classificacao
	v := variacao
	p.PercentualVariacao = &v
	return nil
}

func (f *fakePrecoRepo) Delete(id string) error {
	delete(f.precos, id)
	return nil
}

type fakeItemRepo struct {
	itens        map[string]*entity.Item
	valoracoes   []string // itemIDs na ordem das gravações de valoração
	valoracaoErr error
}

func newFakeItemRepo(itens ...*entity.Item) *fakeItemRepo {
	f := &fakeItemRepo{itens: map[string]*entity.Item{}}
	for _, it := range itens {
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

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := f.itens[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) Update(it *entity.Item) error {
	cp := *it
	f.itens[it.ID] = &cp
	return nil
}

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

func (f *fakeItemRepo) UpdateValoracao(itemID string, unitario, total decimal.Decimal) error {
	if f.valoracaoErr != nil {
		return f.valoracaoErr
	}
	it, ok := f.itens[itemID]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	u, t := unitario, total
	it.ValorUnitarioEstimado = &u
	it.ValorTotalEstimado = &t
	f.valoracoes = append(f.valoracoes, itemID)
	return nil
}

func (f *fakeItemRepo) Delete(id string) error {
	delete(f.itens, id)
	return nil
}

type fakeFornecedorRepo struct {
	fornecedores map[string]*entity.Fornecedor
}

func (f *fakeFornecedorRepo) Create(fo *entity.Fornecedor) error { return nil }

func (f *fakeFornecedorRepo) GetByID(id string) (*entity.Fornecedor, error) {
	fo, ok := f.fornecedores[id]
	if !ok {
		return nil, nil
	}
	return fo, nil
}
func (f *fakeFornecedorRepo) GetByCNPJ(string) (*entity.Fornecedor, error) { return nil, nil }
func (f *fakeFornecedorRepo) Update(*entity.Fornecedor) error              { return nil }
func (f *fakeFornecedorRepo) List(int, int) ([]*entity.Fornecedor, error)  { return nil, nil }
func (f *fakeFornecedorRepo) SoftDelete(string) error                      { return nil }

// fakeTxRunner executa o callback com os próprios fakes (sem transação real).
type fakeTxRunner struct {
	precoRepo *fakePrecoRepo
	itemRepo  *fakeItemRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.PrecoRepository, repository.ItemRepository) error) error {
	return fn(f.precoRepo, f.itemRepo)
}

// fakeSink acumula os registros de auditoria.
type fakeSink struct {
	registros []*entity.Auditoria
}

func (f *fakeSink) Registrar(_ context.Context, a *entity.Auditoria) {
	f.registros = append(f.registros, a)
}

// ── montagem ──────────────────────────────────────────────────────────────────

type ambiente struct {
	uc         *preco.UseCase
	precoRepo  *fakePrecoRepo
	itemRepo   *fakeItemRepo
	fornecedor *fakeFornecedorRepo
	sink       *fakeSink
}

func novoAmbiente(itens ...*entity.Item) *ambiente {
	precoRepo := newFakePrecoRepo()
	itemRepo := newFakeItemRepo(itens...)
	fornecedorRepo := &fakeFornecedorRepo{fornecedores: map[string]*entity.Fornecedor{
		"forn-1": {ID: "forn-1", RazaoSocial: "Fornecedora Alfa Ltda", CNPJ: "11222333000181", Ativo: true},
	}}
	sink := &fakeSink{}
	valorador := preco.NewValorador(precoRepo, itemRepo)
	uc := preco.NewUseCase(precoRepo, itemRepo, fornecedorRepo,
		&fakeTxRunner{precoRepo: precoRepo, itemRepo: itemRepo}, valorador, sink)
	return &ambiente{uc: uc, precoRepo: precoRepo, itemRepo: itemRepo, fornecedor: fornecedorRepo, sink: sink}
}

func itemQtd(id string, qtd int64) *entity.Item {
	return &entity.Item{ID: id, DemandaID: "dem-1", Descricao: "item", Quantidade: decimal.NewFromInt(qtd)}
}

func criaPreco(valor float64) dto.CreatePrecoRequest {
	return dto.CreatePrecoRequest{
		ItemID:        "item-1",
		ValorUnitario: decimal.NewFromFloat(valor),
		Fonte:         "pesquisa",
		TipoFonte:     entity.FontePainelPrecos,
		DataColeta:    time.Now(),
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_ValorNaoPositivo(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 10))
	for _, v := range []float64{0, -1} {
		_, err := amb.uc.Create(context.Background(), "user-1", criaPreco(v))
		require.Error(t, err, "valor %v", v)
		assert.True(t, errors.Is(err, domain.ErrValidacao))
	}
	assert.Empty(t, amb.precoRepo.precos, "nada pode ser persistido")
}

func TestCreate_ItemInexistente(t *testing.T) {
	amb := novoAmbiente()
	_, err := amb.uc.Create(context.Background(), "user-1", criaPreco(100))
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}

func TestCreate_TipoFonteDesconhecido(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 10))
	in := criaPreco(100)
	in.TipoFonte = "ACHISMO"
	_, err := amb.uc.Create(context.Background(), "user-1", in)
	assert.True(t, errors.Is(err, domain.ErrValidacao))
}

// Cenário do plano: cotações 5000, 6000 e 5500 para quantidade 10 → valor
// unitário estimado 5500 (mediana), total 55000, todas ACCEPTED.
func TestCreate_RevaloraItemComMediana(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 10))
	ctx := context.Background()

	for _, v := range []float64{5000, 6000, 5500} {
		_, err := amb.uc.Create(ctx, "user-1", criaPreco(v))
		require.NoError(t, err)
	}

	it := amb.itemRepo.itens["item-1"]
	require.NotNil(t, it.ValorUnitarioEstimado)
	require.NotNil(t, it.ValorTotalEstimado)
	assert.True(t, it.ValorUnitarioEstimado.Equal(decimal.NewFromInt(5500)),
		"unitário = mediana, obtido %s", it.ValorUnitarioEstimado)
	assert.True(t, it.ValorTotalEstimado.Equal(decimal.NewFromInt(55000)),
		"total = mediana × quantidade, obtido %s", it.ValorTotalEstimado)

	for _, p := range amb.precoRepo.precos {
		assert.Equal(t, entity.ClassificacaoAceito, p.Classificacao)
		require.NotNil(t, p.PercentualVariacao)
	}
}

// Invariante: total == unitário × quantidade após todo recálculo.
func TestCreate_InvarianteTotal(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 7))
	ctx := context.Background()
	for _, v := range []float64{120, 80, 101.5, 99} {
		_, err := amb.uc.Create(ctx, "user-1", criaPreco(v))
		require.NoError(t, err)
		it := amb.itemRepo.itens["item-1"]
		require.NotNil(t, it.ValorUnitarioEstimado)
		assert.True(t, it.ValorTotalEstimado.Equal(it.ValorUnitarioEstimado.Mul(it.Quantidade)))
	}
}

func TestCreate_AutoPreencheFornecedor(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 1))
	in := criaPreco(50)
	in.Fonte = ""
	in.TipoFonte = entity.FonteCotacaoFornecedor
	in.FornecedorID = "forn-1"

	out, err := amb.uc.Create(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, "Fornecedora Alfa Ltda", out.Fonte)
	assert.Equal(t, "11222333000181", out.FornecedorCNPJ)
}

// Falha no recálculo não desfaz a mutação: o preço fica gravado e a resposta
// carrega o aviso.
func TestCreate_FalhaRevaloracaoViraAviso(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 10))
	amb.itemRepo.valoracaoErr = errors.New("banco indisponível")

	out, err := amb.uc.Create(context.Background(), "user-1", criaPreco(100))
	require.NoError(t, err, "a mutação primária é soberana")
	assert.NotEmpty(t, out.Warning)
	assert.Len(t, amb.precoRepo.precos, 1, "o preço permanece gravado")
}

// ── CreateLote ────────────────────────────────────────────────────────────────

// N entradas com M valores ≤ 0: cria exatamente N−M preços, um recálculo por
// item distinto (não por preço) e um único registro agregado de auditoria.
func TestCreateLote_PulaValoresNaoPositivosERevaloraUmaVezPorItem(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 10), itemQtd("item-2", 5))
	in := dto.CreatePrecoLoteRequest{
		FornecedorID: "forn-1",
		TipoFonte:    entity.FonteCotacaoFornecedor,
		DataColeta:   time.Now(),
		Itens: []dto.CreatePrecoLoteItem{
			{ItemID: "item-1", ValorUnitario: decimal.NewFromInt(100)},
			{ItemID: "item-1", ValorUnitario: decimal.NewFromInt(110)},
			{ItemID: "item-2", ValorUnitario: decimal.Zero},          // pulado
			{ItemID: "item-2", ValorUnitario: decimal.NewFromInt(-5)}, // pulado
			{ItemID: "item-2", ValorUnitario: decimal.NewFromInt(80)},
		},
	}

	out, err := amb.uc.CreateLote(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Criados)
	assert.Equal(t, 2, out.Pulados)
	assert.Len(t, out.IDs, 3)
	assert.Len(t, amb.precoRepo.precos, 3)

	assert.Len(t, amb.itemRepo.valoracoes, 2, "um recálculo por item distinto")
	assert.ElementsMatch(t, []string{"item-1", "item-2"}, amb.itemRepo.valoracoes)

	require.Len(t, amb.sink.registros, 1, "um único registro agregado")
	assert.Equal(t, entity.AcaoCriacao, amb.sink.registros[0].Acao)
}

func TestCreateLote_FornecedorInexistente(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 1))
	in := dto.CreatePrecoLoteRequest{
		FornecedorID: "forn-999",
		TipoFonte:    entity.FonteCotacaoFornecedor,
		Itens:        []dto.CreatePrecoLoteItem{{ItemID: "item-1", ValorUnitario: decimal.NewFromInt(10)}},
	}
	_, err := amb.uc.CreateLote(context.Background(), "user-1", in)
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}

func TestCreateLote_ItemInexistenteAbortaSemRecalculo(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 1))
	in := dto.CreatePrecoLoteRequest{
		FornecedorID: "forn-1",
		TipoFonte:    entity.FonteCotacaoFornecedor,
		Itens: []dto.CreatePrecoLoteItem{
			{ItemID: "item-1", ValorUnitario: decimal.NewFromInt(10)},
			{ItemID: "item-ghost", ValorUnitario: decimal.NewFromInt(20)},
		},
	}
	_, err := amb.uc.CreateLote(context.Background(), "user-1", in)
	require.Error(t, err)
	assert.Empty(t, amb.itemRepo.valoracoes, "nenhum recálculo após falha do lote")
	assert.Empty(t, amb.sink.registros, "sem auditoria de lote que falhou")
}

// ── Update / Delete ───────────────────────────────────────────────────────────

func TestUpdate_ValorRecalculaEAudita(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 2))
	ctx := context.Background()
	out, err := amb.uc.Create(ctx, "user-1", criaPreco(100))
	require.NoError(t, err)

	novo := decimal.NewFromInt(200)
	_, err = amb.uc.Update(ctx, "user-1", out.ID, dto.UpdatePrecoRequest{ValorUnitario: &novo})
	require.NoError(t, err)

	it := amb.itemRepo.itens["item-1"]
	assert.True(t, it.ValorUnitarioEstimado.Equal(novo), "mediana de um único preço é o próprio valor")
	assert.True(t, it.ValorTotalEstimado.Equal(decimal.NewFromInt(400)))

	ultimo := amb.sink.registros[len(amb.sink.registros)-1]
	assert.Equal(t, entity.AcaoAlteracao, ultimo.Acao)
	assert.Equal(t, "valor_unitario", ultimo.CampoAlterado)
	assert.Equal(t, "100", ultimo.ValorAnterior)
	assert.Equal(t, "200", ultimo.ValorNovo)
}

func TestUpdate_PrecoInexistente(t *testing.T) {
	amb := novoAmbiente()
	_, err := amb.uc.Update(context.Background(), "user-1", "ghost", dto.UpdatePrecoRequest{})
	assert.True(t, errors.Is(err, domain.ErrNaoEncontrado))
}

// Excluir o último preço não zera os valores estimados do item: o conjunto
// vazio mantém a última valoração conhecida.
func TestDelete_UltimoPrecoMantemValoracaoAnterior(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 3))
	ctx := context.Background()
	out, err := amb.uc.Create(ctx, "user-1", criaPreco(90))
	require.NoError(t, err)

	it := amb.itemRepo.itens["item-1"]
	require.NotNil(t, it.ValorUnitarioEstimado)

	warning, err := amb.uc.Delete(ctx, "user-1", out.ID)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Empty(t, amb.precoRepo.precos)

	it = amb.itemRepo.itens["item-1"]
	require.NotNil(t, it.ValorUnitarioEstimado, "valoração anterior preservada")
	assert.True(t, it.ValorUnitarioEstimado.Equal(decimal.NewFromInt(90)))
}

func TestDelete_RecalculaComRemanescentes(t *testing.T) {
	amb := novoAmbiente(itemQtd("item-1", 1))
	ctx := context.Background()
	a, err := amb.uc.Create(ctx, "user-1", criaPreco(100))
	require.NoError(t, err)
	_, err = amb.uc.Create(ctx, "user-1", criaPreco(300))
	require.NoError(t, err)

	_, err = amb.uc.Delete(ctx, "user-1", a.ID)
	require.NoError(t, err)

	it := amb.itemRepo.itens["item-1"]
	assert.True(t, it.ValorUnitarioEstimado.Equal(decimal.NewFromInt(300)))
}
