package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.DemandaRepository = (*DemandaRepo)(nil)

// DemandaRepo implementação do porto DemandaRepository sobre PostgreSQL (usável com pool ou tx).
type DemandaRepo struct {
	q Querier
}

// NewDemandaRepository constrói o adaptador de persistência de demandas. Passar pool ou tx (Querier).
func NewDemandaRepository(q Querier) *DemandaRepo {
	return &DemandaRepo{q: q}
}

const demandaColumns = `id, pca_id, codigo, descricao, status, numero_processo, numero_contrato,
	data_contrato, valor_contratado, fornecedor_cnpj, fornecedor_nome,
	justificativa_cancelamento, cancelada_em, ativo, criado_em, atualizado_em`

// Create persiste uma demanda.
func (r *DemandaRepo) Create(d *entity.Demanda) error {
	query := `
		INSERT INTO demandas (` + demandaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.PcaID, d.Codigo, d.Descricao, d.Status, nullIfEmpty(d.NumeroProcesso),
		nullIfEmpty(d.NumeroContrato), d.DataContrato, d.ValorContratado,
		nullIfEmpty(d.FornecedorCNPJ), nullIfEmpty(d.FornecedorNome),
		nullIfEmpty(d.JustificativaCancelamento), d.CanceladaEm,
		d.Ativo, d.CriadoEm, d.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert demanda: %w", err)
	}
	return nil
}

// GetByID obtém uma demanda ativa por ID.
func (r *DemandaRepo) GetByID(id string) (*entity.Demanda, error) {
	query := `SELECT ` + demandaColumns + ` FROM demandas WHERE id = $1 AND ativo`
	d, err := scanDemanda(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get demanda: %w", err)
	}
	return d, nil
}

// Update atualiza os campos mutáveis da demanda (codigo nunca muda).
func (r *DemandaRepo) Update(d *entity.Demanda) error {
	query := `
		UPDATE demandas SET descricao = $2, status = $3, numero_processo = $4,
			numero_contrato = $5, data_contrato = $6, valor_contratado = $7,
			fornecedor_cnpj = $8, fornecedor_nome = $9,
			justificativa_cancelamento = $10, cancelada_em = $11, atualizado_em = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Descricao, d.Status, nullIfEmpty(d.NumeroProcesso),
		nullIfEmpty(d.NumeroContrato), d.DataContrato, d.ValorContratado,
		nullIfEmpty(d.FornecedorCNPJ), nullIfEmpty(d.FornecedorNome),
		nullIfEmpty(d.JustificativaCancelamento), d.CanceladaEm, d.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update demanda: %w", err)
	}
	return nil
}

// ListByPca lista demandas ativas do plano; limit ≤ 0 devolve todas.
func (r *DemandaRepo) ListByPca(pcaID string, limit, offset int) ([]*entity.Demanda, error) {
	query := `
		SELECT ` + demandaColumns + ` FROM demandas
		WHERE pca_id = $1 AND ativo ORDER BY codigo`
	args := []any{pcaID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list demandas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Demanda
	for rows.Next() {
		d, err := scanDemanda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan demanda: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CountByPca conta demandas ativas do plano.
func (r *DemandaRepo) CountByPca(pcaID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM demandas WHERE pca_id = $1 AND ativo`, pcaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count demandas: %w", err)
	}
	return n, nil
}

// SoftDelete marca a demanda como inativa (tombstone).
func (r *DemandaRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE demandas SET ativo = false, atualizado_em = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete demanda: %w", err)
	}
	return nil
}

// ProximaSequenciaCodigo devolve o próximo valor da sequência usada no código
// imutável "DM-<ano>-<seq>". Sequência global: o código nunca se repete, nem
// entre planos.
func (r *DemandaRepo) ProximaSequenciaCodigo() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(),
		`SELECT nextval('demandas_codigo_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("nextval demandas_codigo_seq: %w", err)
	}
	return seq, nil
}

// scanDemanda lê uma linha de demandas lidando com as colunas anuláveis.
func scanDemanda(row pgx.Row) (*entity.Demanda, error) {
	var d entity.Demanda
	var numeroProcesso, numeroContrato, fornecedorCNPJ, fornecedorNome, justificativa *string
	err := row.Scan(
		&d.ID, &d.PcaID, &d.Codigo, &d.Descricao, &d.Status, &numeroProcesso,
		&numeroContrato, &d.DataContrato, &d.ValorContratado, &fornecedorCNPJ,
		&fornecedorNome, &justificativa, &d.CanceladaEm,
		&d.Ativo, &d.CriadoEm, &d.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}
	d.NumeroProcesso = derefOrEmpty(numeroProcesso)
	d.NumeroContrato = derefOrEmpty(numeroContrato)
	d.FornecedorCNPJ = derefOrEmpty(fornecedorCNPJ)
	d.FornecedorNome = derefOrEmpty(fornecedorNome)
	d.JustificativaCancelamento = derefOrEmpty(justificativa)
	return &d, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
