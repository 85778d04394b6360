// Package metrics concentra os contadores Prometheus da aplicação.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransicoesDemanda conta transições de status de demanda efetivadas.
	TransicoesDemanda = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pca",
		Name:      "demanda_transicoes_total",
		Help:      "Transições de status de demanda efetivadas, por status de destino.",
	}, []string{"para"})

	// Revaloracoes conta recálculos de valoração de item por resultado.
	Revaloracoes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pca",
		Name:      "item_revaloracoes_total",
		Help:      "Recálculos de valoração de item, por resultado (ok, vazio, erro).",
	}, []string{"resultado"})

	// NotificacoesFalhas conta notificações de mudança de status que falharam.
	NotificacoesFalhas = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pca",
		Name:      "notificacoes_falhas_total",
		Help:      "Notificações de mudança de status que falharam.",
	})
)
