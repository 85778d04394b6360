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

var _ repository.FornecedorRepository = (*FornecedorRepo)(nil)

// FornecedorRepo implementação do porto FornecedorRepository sobre PostgreSQL.
type FornecedorRepo struct {
	q Querier
}

// NewFornecedorRepository constrói o adaptador de persistência de fornecedores.
func NewFornecedorRepository(q Querier) *FornecedorRepo {
	return &FornecedorRepo{q: q}
}

const fornecedorColumns = `id, razao_social, nome_fantasia, cnpj, ativo, criado_em, atualizado_em`

// Create persiste um fornecedor. CNPJ é único.
func (r *FornecedorRepo) Create(f *entity.Fornecedor) error {
	query := `
		INSERT INTO fornecedores (` + fornecedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.RazaoSocial, f.NomeFantasia, f.CNPJ, f.Ativo, f.CriadoEm, f.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert fornecedor: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor ativo por ID.
func (r *FornecedorRepo) GetByID(id string) (*entity.Fornecedor, error) {
	query := `SELECT ` + fornecedorColumns + ` FROM fornecedores WHERE id = $1 AND ativo`
	return r.getOne(query, id)
}

// GetByCNPJ obtém um fornecedor ativo pelo CNPJ normalizado (14 dígitos).
func (r *FornecedorRepo) GetByCNPJ(cnpj string) (*entity.Fornecedor, error) {
	query := `SELECT ` + fornecedorColumns + ` FROM fornecedores WHERE cnpj = $1 AND ativo`
	return r.getOne(query, cnpj)
}

func (r *FornecedorRepo) getOne(query, arg string) (*entity.Fornecedor, error) {
	var f entity.Fornecedor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&f.ID, &f.RazaoSocial, &f.NomeFantasia, &f.CNPJ, &f.Ativo, &f.CriadoEm, &f.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fornecedor: %w", err)
	}
	return &f, nil
}

// Update atualiza razão social e nome fantasia (o CNPJ não muda).
func (r *FornecedorRepo) Update(f *entity.Fornecedor) error {
	query := `
		UPDATE fornecedores SET razao_social = $2, nome_fantasia = $3, atualizado_em = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.RazaoSocial, f.NomeFantasia, f.AtualizadoEm)
	if err != nil {
		return fmt.Errorf("update fornecedor: %w", err)
	}
	return nil
}

// List lista fornecedores ativos com paginação.
func (r *FornecedorRepo) List(limit, offset int) ([]*entity.Fornecedor, error) {
	query := `
		SELECT ` + fornecedorColumns + ` FROM fornecedores
		WHERE ativo ORDER BY razao_social LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fornecedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fornecedor
	for rows.Next() {
		var f entity.Fornecedor
		if err := rows.Scan(&f.ID, &f.RazaoSocial, &f.NomeFantasia, &f.CNPJ, &f.Ativo,
			&f.CriadoEm, &f.AtualizadoEm); err != nil {
			return nil, fmt.Errorf("scan fornecedor: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// SoftDelete marca o fornecedor como inativo; preços já coletados o preservam.
func (r *FornecedorRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE fornecedores SET ativo = false, atualizado_em = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete fornecedor: %w", err)
	}
	return nil
}
