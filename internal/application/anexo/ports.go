package anexo

import "context"

// BlobStore armazena o conteúdo dos anexos, chaveado por tipo de entidade e id.
// O domínio não valida o conteúdo: apenas associa metadados.
type BlobStore interface {
	// Save grava o blob e devolve a chave de armazenamento.
	Save(ctx context.Context, tipoEntidade, entidadeID, nomeArquivo string, conteudo []byte) (string, error)
	// Load lê o blob pela chave devolvida por Save.
	Load(ctx context.Context, chave string) ([]byte, error)
}
