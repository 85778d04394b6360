package entity

import "time"

// Anexo representa os metadados de um arquivo associado a uma entidade
// (DEMANDA, ITEM ou PRECO). O conteúdo fica no blob store; o domínio não
// valida o conteúdo, apenas a associação.
type Anexo struct {
	ID           string
	TipoEntidade string // EntidadeDemanda | EntidadeItem | EntidadePreco
	EntidadeID   string
	NomeArquivo  string
	ContentType  string
	Tamanho      int64
	Caminho      string // chave no blob store
	Ativo        bool
	CriadoEm     time.Time
	CriadoPor    string
}
