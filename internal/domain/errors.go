package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado     = errors.New("recurso não encontrado")
	ErrValidacao         = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrNaoAutorizado     = errors.New("não autorizado")
	ErrAcessoNegado      = errors.New("acesso negado")
	ErrConflitoEstado    = errors.New("operação incompatível com o estado atual")
	ErrTransicaoInvalida = errors.New("transição de status não permitida")
)

// TransicaoInvalidaError indica uma transição fora da tabela permitida,
// nomeando origem e destino. errors.Is(err, ErrTransicaoInvalida) == true.
type TransicaoInvalidaError struct {
	Entidade string // "Demanda" | "PCA"
	De       string
	Para     string
}

func (e *TransicaoInvalidaError) Error() string {
	return fmt.Sprintf("%s: transição de %s para %s não permitida", e.Entidade, e.De, e.Para)
}

func (e *TransicaoInvalidaError) Unwrap() error { return ErrTransicaoInvalida }

// ValidacaoError carrega o campo e o motivo da rejeição.
// errors.Is(err, ErrValidacao) == true.
type ValidacaoError struct {
	Campo  string
	Motivo string
}

func (e *ValidacaoError) Error() string {
	return fmt.Sprintf("validação: %s: %s", e.Campo, e.Motivo)
}

func (e *ValidacaoError) Unwrap() error { return ErrValidacao }

// ConflitoEstadoError indica operação negada pelo estado atual da entidade
// (ex.: excluir Demanda fora de CADASTRADA, mutar PCA encerrado).
type ConflitoEstadoError struct {
	Entidade string
	Estado   string
	Operacao string
}

func (e *ConflitoEstadoError) Error() string {
	return fmt.Sprintf("%s em %s: %s não permitida", e.Entidade, e.Estado, e.Operacao)
}

func (e *ConflitoEstadoError) Unwrap() error { return ErrConflitoEstado }
