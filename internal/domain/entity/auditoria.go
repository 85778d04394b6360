package entity

import "time"

// Ações registradas na trilha de auditoria.
const (
	AcaoCriacao   = "CREATE"
	AcaoAlteracao = "UPDATE"
	AcaoExclusao  = "DELETE"
	AcaoTransicao = "STATUS_TRANSITION"
)

// Tipos de entidade auditável / anexável.
const (
	EntidadePca        = "PCA"
	EntidadeDemanda    = "DEMANDA"
	EntidadeItem       = "ITEM"
	EntidadePreco      = "PRECO"
	EntidadeFornecedor = "FORNECEDOR"
)

// Auditoria é um registro imutável da trilha de auditoria: nunca é alterado
// nem excluído pelo domínio após a escrita.
type Auditoria struct {
	ID            string
	UsuarioID     string
	Acao          string
	TipoEntidade  string
	EntidadeID    string
	CampoAlterado string
	ValorAnterior string
	ValorNovo     string
	Descricao     string
	Resultado     string // "SUCESSO" | "FALHA"
	CriadoEm      time.Time
}
