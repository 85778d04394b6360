// Package storage implementa o blob store dos anexos em disco local. A chave
// devolvida é o caminho relativo ao diretório raiz, persistida nos metadados.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jmacedo/pca-api/internal/application/anexo"
)

var _ anexo.BlobStore = (*LocalBlobStore)(nil)

// LocalBlobStore grava blobs sob dir/<tipo>/<entidade_id>/<uuid>-<nome>.
type LocalBlobStore struct {
	dir string
}

// NewLocalBlobStore constrói o store sobre o diretório raiz.
func NewLocalBlobStore(dir string) *LocalBlobStore {
	return &LocalBlobStore{dir: dir}
}

// Save grava o conteúdo e devolve a chave de armazenamento.
func (s *LocalBlobStore) Save(_ context.Context, tipoEntidade, entidadeID, nomeArquivo string, conteudo []byte) (string, error) {
	chave := filepath.Join(
		strings.ToLower(tipoEntidade),
		entidadeID,
		uuid.New().String()+"-"+filepath.Base(nomeArquivo),
	)
	caminho := filepath.Join(s.dir, chave)
	if err := os.MkdirAll(filepath.Dir(caminho), 0o755); err != nil {
		return "", fmt.Errorf("blob store: criar diretório: %w", err)
	}
	if err := os.WriteFile(caminho, conteudo, 0o644); err != nil {
		return "", fmt.Errorf("blob store: gravar %s: %w", chave, err)
	}
	return chave, nil
}

// Load lê o conteúdo pela chave devolvida por Save. A chave é validada contra
// path traversal: precisa resolver dentro do diretório raiz.
func (s *LocalBlobStore) Load(_ context.Context, chave string) ([]byte, error) {
	caminho := filepath.Join(s.dir, filepath.Clean(chave))
	if !strings.HasPrefix(caminho, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("blob store: chave inválida: %s", chave)
	}
	conteudo, err := os.ReadFile(caminho)
	if err != nil {
		return nil, fmt.Errorf("blob store: ler %s: %w", chave, err)
	}
	return conteudo, nil
}
