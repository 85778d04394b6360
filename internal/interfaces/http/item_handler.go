package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/item"
	"github.com/jmacedo/pca-api/internal/application/preco"
)

// ItemHandler trata as rotas de item de demanda (protegido).
type ItemHandler struct {
	uc     *item.UseCase
	precos *preco.UseCase
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *item.UseCase, precos *preco.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc, precos: precos}
}

// Create godoc
// @Summary      Cadastrar item em uma demanda
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "demanda_id, descricao, unidade_medida, quantidade"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByDemanda godoc
// @Summary      Listar itens de uma demanda
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        demanda_id  query  string  true  "ID da demanda"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/itens [get]
func (h *ItemHandler) ListByDemanda(c *fiber.Ctx) error {
	demandaID := c.Query("demanda_id")
	if demandaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "demanda_id é obrigatório"})
	}
	out, err := h.uc.ListByDemanda(demandaID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar item por ID
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar item
// @Description  Os valores estimados não são editáveis: somente o recálculo de
//
//	valoração os escreve. Alterar a quantidade recalcula o valor total estimado.
//
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID do item"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a alterar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir item
// @Description  Exclusão física; os preços coletados do item são removidos junto.
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "item excluído"})
}

// ListPrecos godoc
// @Summary      Listar preços coletados de um item
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {array}  dto.PrecoResponse
// @Router       /api/itens/{id}/precos [get]
func (h *ItemHandler) ListPrecos(c *fiber.Ctx) error {
	out, err := h.precos.ListByItem(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Estatisticas godoc
// @Summary      Estatísticas dos preços de um item
// @Description  Mediana, média, desvio padrão, coeficiente de variação e faixa de
//
//	aceitação (mediana ±25%) calculados sobre os preços ativos.
//
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  dto.EstatisticaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/estatisticas [get]
func (h *ItemHandler) Estatisticas(c *fiber.Ctx) error {
	out, err := h.precos.Estatisticas(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item sem preços coletados"})
	}
	return c.JSON(out)
}
