package workflow

import (
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// situacoesPca é o conjunto de situações válidas do PCA. Diferente da Demanda,
// o servidor não impõe uma tabela estrita de transições: a única regra é que
// situações terminais (ENCERRADO, CANCELADO) tornam o plano somente-leitura.
var situacoesPca = map[string]bool{
	entity.PcaEmElaboracao: true,
	entity.PcaAprovado:     true,
	entity.PcaEmExecucao:   true,
	entity.PcaRevisado:     true,
	entity.PcaEncerrado:    true,
	entity.PcaCancelado:    true,
}

// situacoesVersionaveis: somente planos aprovados ou em execução geram nova versão.
var situacoesVersionaveis = map[string]bool{
	entity.PcaAprovado:   true,
	entity.PcaEmExecucao: true,
}

// SituacaoPcaValida informa se a situação pertence ao conjunto conhecido.
func SituacaoPcaValida(s string) bool {
	return situacoesPca[s]
}

// PcaTerminal informa se a situação é terminal (plano somente-leitura).
func PcaTerminal(s string) bool {
	return s == entity.PcaEncerrado || s == entity.PcaCancelado
}

// ValidarMudancaSituacaoPca rejeita mutações sobre planos terminais e
// situações de destino desconhecidas.
func ValidarMudancaSituacaoPca(de, para string) error {
	if PcaTerminal(de) {
		return &domain.ConflitoEstadoError{Entidade: "PCA", Estado: de, Operacao: "mudança de situação"}
	}
	if !SituacaoPcaValida(para) {
		return &domain.ValidacaoError{Campo: "situacao", Motivo: "situação desconhecida: " + para}
	}
	return nil
}

// PcaPodeVersionar informa se a situação atual permite criar nova versão.
func PcaPodeVersionar(s string) bool {
	return situacoesVersionaveis[s]
}
