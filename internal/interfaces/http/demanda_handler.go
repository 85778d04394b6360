package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/demanda"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/relatorio"
)

// DemandaHandler trata as rotas de demanda de contratação (protegido).
type DemandaHandler struct {
	uc        *demanda.UseCase
	relatorio *relatorio.UseCase
}

// NewDemandaHandler constrói o handler.
func NewDemandaHandler(uc *demanda.UseCase, rel *relatorio.UseCase) *DemandaHandler {
	return &DemandaHandler{uc: uc, relatorio: rel}
}

// Create godoc
// @Summary      Cadastrar demanda
// @Description  A demanda nasce CADASTRADA, com código sequencial DM-<ano>-<nnnnn>.
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDemandaRequest  true  "pca_id e descricao"
// @Success      201   {object}  dto.DemandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/demandas [post]
func (h *DemandaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDemandaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByPca godoc
// @Summary      Listar demandas de um plano
// @Tags         demandas
// @Security     Bearer
// @Produce      json
// @Param        pca_id  query  string  true   "ID do plano"
// @Param        limit   query  int     false  "Tamanho da página (padrão 20)"
// @Param        offset  query  int     false  "Deslocamento"
// @Success      200  {object}  dto.DemandaListResponse
// @Router       /api/demandas [get]
func (h *DemandaHandler) ListByPca(c *fiber.Ctx) error {
	pcaID := c.Query("pca_id")
	if pcaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pca_id é obrigatório"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListByPca(pcaID, page.Limit, page.Offset)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar demanda por ID
// @Tags         demandas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da demanda"
// @Success      200  {object}  dto.DemandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/demandas/{id} [get]
func (h *DemandaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar demanda
// @Description  Somente campos descritivos; o status muda apenas pelas rotas de workflow.
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID da demanda"
// @Param        body  body  dto.UpdateDemandaRequest  true  "campos a alterar"
// @Success      200   {object}  dto.DemandaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/demandas/{id} [put]
func (h *DemandaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDemandaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// MudarStatus godoc
// @Summary      Mudar o status da demanda
// @Description  Transições fora da tabela permitida são recusadas com 422.
//
//	CANCELADA exige justificativa com ao menos 10 caracteres.
//
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID da demanda"
// @Param        body  body  dto.MudarStatusDemandaRequest  true  "status destino"
// @Success      200   {object}  dto.DemandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/demandas/{id}/status [patch]
func (h *DemandaHandler) MudarStatus(c *fiber.Ctx) error {
	var in dto.MudarStatusDemandaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MudarStatus(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// IniciarContratacao godoc
// @Summary      Iniciar contratação (ESTIMADA → EM_CONTRATACAO)
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID da demanda"
// @Param        body  body  dto.IniciarContratacaoRequest  true  "numero_processo"
// @Success      200   {object}  dto.DemandaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/demandas/{id}/contratacao [post]
func (h *DemandaHandler) IniciarContratacao(c *fiber.Ctx) error {
	var in dto.IniciarContratacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.IniciarContratacao(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// FinalizarContrato godoc
// @Summary      Registrar contrato (EM_CONTRATACAO → CONTRATADA)
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID da demanda"
// @Param        body  body  dto.FinalizarContratoRequest  true  "numero_contrato, data, valor e fornecedor"
// @Success      200   {object}  dto.DemandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/demandas/{id}/contrato [post]
func (h *DemandaHandler) FinalizarContrato(c *fiber.Ctx) error {
	var in dto.FinalizarContratoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.FinalizarContrato(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir demanda
// @Description  Exclusão lógica, permitida apenas com status CADASTRADA.
// @Tags         demandas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da demanda"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/demandas/{id} [delete]
func (h *DemandaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "demanda excluída"})
}

// Relatorio godoc
// @Summary      Relatório da demanda em PDF
// @Description  Demanda, itens com estatísticas de valoração e preços coletados.
//
//	Com apenas_faixa=true os preços fora da faixa de aceitação (mediana ±25%)
//	são omitidos da apresentação; nada é alterado nos dados.
//
// @Tags         demandas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id            path   string  true   "ID da demanda"
// @Param        apenas_faixa  query  bool    false  "Omitir preços fora da faixa de aceitação"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/demandas/{id}/relatorio [get]
func (h *DemandaHandler) Relatorio(c *fiber.Ctx) error {
	id := c.Params("id")
	conteudo, err := h.relatorio.RelatorioDemandaPDF(c.Context(), id, c.QueryBool("apenas_faixa"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="demanda-%s.pdf"`, id))
	return c.Send(conteudo)
}
