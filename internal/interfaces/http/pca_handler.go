package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/pca"
	"github.com/jmacedo/pca-api/internal/application/relatorio"
)

// PcaHandler trata as rotas do plano anual de contratações (protegido).
type PcaHandler struct {
	uc        *pca.UseCase
	relatorio *relatorio.UseCase
}

// NewPcaHandler constrói o handler.
func NewPcaHandler(uc *pca.UseCase, rel *relatorio.UseCase) *PcaHandler {
	return &PcaHandler{uc: uc, relatorio: rel}
}

// Create godoc
// @Summary      Criar plano anual (versão 1, EM_ELABORACAO)
// @Tags         pca
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePcaRequest  true  "ano, numero_plano, responsavel"
// @Success      201   {object}  dto.PcaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pcas [post]
func (h *PcaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePcaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar planos
// @Tags         pca
// @Security     Bearer
// @Produce      json
// @Param        ano     query  int  false  "Filtrar por ano"
// @Param        limit   query  int  false  "Tamanho da página (padrão 20)"
// @Param        offset  query  int  false  "Deslocamento"
// @Success      200  {object}  dto.PcaListResponse
// @Router       /api/pcas [get]
func (h *PcaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.QueryInt("ano"), page.Limit, page.Offset)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar plano por ID
// @Tags         pca
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do plano"
// @Success      200  {object}  dto.PcaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pcas/{id} [get]
func (h *PcaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// MudarSituacao godoc
// @Summary      Mudar a situação do plano
// @Description  Transições seguem a tabela permitida; ENCERRADO e CANCELADO são terminais.
// @Tags         pca
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID do plano"
// @Param        body  body  dto.MudarSituacaoPcaRequest  true  "situacao destino"
// @Success      200   {object}  dto.PcaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pcas/{id}/situacao [patch]
func (h *PcaHandler) MudarSituacao(c *fiber.Ctx) error {
	var in dto.MudarSituacaoPcaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MudarSituacao(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// NovaVersao godoc
// @Summary      Criar nova versão do plano
// @Description  Permitido apenas a partir de APROVADO ou EM_EXECUCAO; copia demandas ativas
//
//	e itens (com valoração) para a nova versão e marca a anterior como REVISADO.
//
// @Tags         pca
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID da versão atual"
// @Param        body  body  dto.NovaVersaoPcaRequest  true  "motivo (mínimo 10 caracteres)"
// @Success      201   {object}  dto.PcaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pcas/{id}/versoes [post]
func (h *PcaHandler) NovaVersao(c *fiber.Ctx) error {
	var in dto.NovaVersaoPcaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.NovaVersao(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Excluir plano
// @Description  Exclusão física, permitida somente quando o plano não possui demandas.
// @Tags         pca
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true   "ID do plano"
// @Param        justificativa  query  string  false  "Justificativa registrada na auditoria"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pcas/{id} [delete]
func (h *PcaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"), c.Query("justificativa")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "plano excluído"})
}

// Planilha godoc
// @Summary      Exportar planilha do plano (xlsx)
// @Description  Uma linha por item das demandas ativas do plano, com valores estimados.
// @Tags         pca
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID do plano"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pcas/{id}/planilha [get]
func (h *PcaHandler) Planilha(c *fiber.Ctx) error {
	id := c.Params("id")
	conteudo, err := h.relatorio.PlanilhaPcaExcel(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="pca-%s.xlsx"`, id))
	return c.Send(conteudo)
}
