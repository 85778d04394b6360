// Package workflow concentra as tabelas de transição de status de Demanda e PCA.
// As tabelas são consultadas, nunca re-derivadas em condicionais espalhadas:
// adicionar uma transição é uma linha aqui.
package workflow

import (
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// demandaTransicoes é a whitelist estrita de transições da Demanda.
// Estados ausentes do mapa ou com lista vazia são terminais.
var demandaTransicoes = map[string][]string{
	entity.DemandaCadastrada:    {entity.DemandaEmAnalise, entity.DemandaCancelada},
	entity.DemandaEmAnalise:     {entity.DemandaEstimada, entity.DemandaCadastrada, entity.DemandaCancelada},
	entity.DemandaEstimada:      {entity.DemandaEmContratacao, entity.DemandaEmAnalise, entity.DemandaCancelada},
	entity.DemandaEmContratacao: {entity.DemandaContratada, entity.DemandaSuspensa, entity.DemandaCancelada},
	entity.DemandaSuspensa:      {entity.DemandaEmContratacao, entity.DemandaCancelada},
	entity.DemandaContratada:    {},
	entity.DemandaCancelada:     {},
}

// StatusDemandaValido informa se o status pertence à máquina de estados.
func StatusDemandaValido(status string) bool {
	_, ok := demandaTransicoes[status]
	return ok
}

// DemandaPodeTransitar informa se a transição de -> para está na whitelist.
func DemandaPodeTransitar(de, para string) bool {
	for _, s := range demandaTransicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}

// ValidarTransicaoDemanda devolve TransicaoInvalidaError quando a transição
// não está na tabela, nil caso contrário.
func ValidarTransicaoDemanda(de, para string) error {
	if !DemandaPodeTransitar(de, para) {
		return &domain.TransicaoInvalidaError{Entidade: "Demanda", De: de, Para: para}
	}
	return nil
}

// DemandaTerminal informa se o status é terminal (sem transições de saída).
func DemandaTerminal(status string) bool {
	return len(demandaTransicoes[status]) == 0 && StatusDemandaValido(status)
}

// DestinosDemanda devolve os destinos permitidos a partir de um status (cópia).
func DestinosDemanda(de string) []string {
	dst := demandaTransicoes[de]
	out := make([]string, len(dst))
	copy(out, dst)
	return out
}
