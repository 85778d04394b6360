package auditoria

import (
	"context"

	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// Sink é o colaborador de auditoria injetado nos casos de uso (nada de estado
// global). Contrato best-effort: a implementação nunca devolve erro ao chamador;
// falha de gravação é registrada em log e engolida, o sucesso da mutação
// primária é soberano.
type Sink interface {
	Registrar(ctx context.Context, a *entity.Auditoria)
}
