package demanda

import "context"

// Notifier é o colaborador de notificação de mudança de status.
// Fire-and-forget: falha de notificação nunca bloqueia a transição.
type Notifier interface {
	NotificarMudancaStatus(ctx context.Context, demandaID, de, para string) error
}
