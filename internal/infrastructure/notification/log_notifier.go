// Package notification implementa o colaborador de notificação de mudanças de
// status. A implementação atual registra a notificação no log estruturado e
// incrementa o contador de transições; a entrega externa (email, fila) entra
// pelo mesmo porto sem tocar nos casos de uso.
package notification

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jmacedo/pca-api/internal/application/demanda"
	"github.com/jmacedo/pca-api/pkg/metrics"
)

var _ demanda.Notifier = (*LogNotifier)(nil)

// LogNotifier notifica via log estruturado.
type LogNotifier struct{}

// NewLogNotifier constrói o notificador.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

// NotificarMudancaStatus registra a transição.
func (n *LogNotifier) NotificarMudancaStatus(_ context.Context, demandaID, de, para string) error {
	metrics.TransicoesDemanda.WithLabelValues(para).Inc()
	log.Info().
		Str("demanda_id", demandaID).
		Str("de", de).
		Str("para", para).
		Msg("mudança de status de demanda")
	return nil
}
