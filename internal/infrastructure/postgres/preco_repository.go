package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.PrecoRepository = (*PrecoRepo)(nil)

// PrecoRepo implementação do porto PrecoRepository sobre PostgreSQL (usável com pool ou tx).
type PrecoRepo struct {
	q Querier
}

// NewPrecoRepository constrói o adaptador de persistência de preços. Passar pool ou tx (Querier).
func NewPrecoRepository(q Querier) *PrecoRepo {
	return &PrecoRepo{q: q}
}

const precoColumns = `id, item_id, valor_unitario, fonte, tipo_fonte, link, fornecedor_id,
	fornecedor_cnpj, data_coleta, classificacao, percentual_variacao, ativo,
	criado_em, atualizado_em, criado_por`

// Create persiste um preço coletado.
func (r *PrecoRepo) Create(p *entity.Preco) error {
	query := `
		INSERT INTO precos (` + precoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ItemID, p.ValorUnitario, p.Fonte, p.TipoFonte, nullIfEmpty(p.Link),
		p.FornecedorID, nullIfEmpty(p.FornecedorCNPJ), p.DataColeta,
		nullIfEmpty(p.Classificacao), p.PercentualVariacao, p.Ativo,
		p.CriadoEm, p.AtualizadoEm, p.CriadoPor,
	)
	if err != nil {
		return fmt.Errorf("insert preco: %w", err)
	}
	return nil
}

// GetByID obtém um preço por ID.
func (r *PrecoRepo) GetByID(id string) (*entity.Preco, error) {
	query := `SELECT ` + precoColumns + ` FROM precos WHERE id = $1`
	p, err := scanPreco(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preco: %w", err)
	}
	return p, nil
}

// Update atualiza os campos editáveis de um preço.
func (r *PrecoRepo) Update(p *entity.Preco) error {
	query := `
		UPDATE precos SET valor_unitario = $2, fonte = $3, tipo_fonte = $4, link = $5,
			fornecedor_cnpj = $6, data_coleta = $7, atualizado_em = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ValorUnitario, p.Fonte, p.TipoFonte, nullIfEmpty(p.Link),
		nullIfEmpty(p.FornecedorCNPJ), p.DataColeta, p.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update preco: %w", err)
	}
	return nil
}

// ListAtivosByItem devolve os preços ativos do item, insumo da valoração.
func (r *PrecoRepo) ListAtivosByItem(itemID string) ([]*entity.Preco, error) {
	query := `SELECT ` + precoColumns + ` FROM precos WHERE item_id = $1 AND ativo ORDER BY data_coleta DESC, criado_em DESC`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list precos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Preco
	for rows.Next() {
		p, err := scanPreco(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preco: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateClassificacao grava classificação e variação derivadas, sem tocar nos
// demais campos nem em atualizado_em (não é edição do usuário).
func (r *PrecoRepo) UpdateClassificacao(id, classificacao string, variacao decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE precos SET classificacao = $2, percentual_variacao = $3 WHERE id = $1`,
		id, classificacao, variacao,
	)
	if err != nil {
		return fmt.Errorf("update classificacao: %w", err)
	}
	return nil
}

// Delete remove fisicamente o preço.
func (r *PrecoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM precos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete preco: %w", err)
	}
	return nil
}

// scanPreco lê uma linha de precos lidando com as colunas anuláveis.
func scanPreco(row pgx.Row) (*entity.Preco, error) {
	var p entity.Preco
	var link, cnpj, classificacao *string
	err := row.Scan(
		&p.ID, &p.ItemID, &p.ValorUnitario, &p.Fonte, &p.TipoFonte, &link, &p.FornecedorID,
		&cnpj, &p.DataColeta, &classificacao, &p.PercentualVariacao, &p.Ativo,
		&p.CriadoEm, &p.AtualizadoEm, &p.CriadoPor,
	)
	if err != nil {
		return nil, err
	}
	p.Link = derefOrEmpty(link)
	p.FornecedorCNPJ = derefOrEmpty(cnpj)
	p.Classificacao = derefOrEmpty(classificacao)
	return &p, nil
}
