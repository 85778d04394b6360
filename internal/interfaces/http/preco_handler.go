package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/application/preco"
)

// PrecoHandler trata as rotas de preço coletado (protegido).
type PrecoHandler struct {
	uc *preco.UseCase
}

// NewPrecoHandler constrói o handler.
func NewPrecoHandler(uc *preco.UseCase) *PrecoHandler {
	return &PrecoHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar preço coletado
// @Description  Recalcula a valoração do item (mediana e classificação dos preços).
// @Tags         precos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrecoRequest  true  "item_id, valor_unitario, fonte, tipo_fonte, data_coleta"
// @Success      201   {object}  dto.PrecoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/precos [post]
func (h *PrecoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrecoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateLote godoc
// @Summary      Cadastrar cotação de fornecedor em lote
// @Description  Um preço por item, em uma única transação. Entradas com valor não
//
//	positivo são ignoradas em silêncio; cada item afetado é revalorado uma vez.
//
// @Tags         precos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrecoLoteRequest  true  "fornecedor_id, tipo_fonte, data_coleta, itens"
// @Success      201   {object}  dto.PrecoLoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/precos/lote [post]
func (h *PrecoHandler) CreateLote(c *fiber.Ctx) error {
	var in dto.CreatePrecoLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateLote(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar preço coletado
// @Description  Alterar o valor unitário dispara o recálculo da valoração do item.
// @Tags         precos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID do preço"
// @Param        body  body  dto.UpdatePrecoRequest  true  "campos a alterar"
// @Success      200   {object}  dto.PrecoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/precos/{id} [put]
func (h *PrecoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePrecoRequest
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
// @Summary      Excluir preço coletado
// @Description  Recalcula a valoração com os preços remanescentes. Quando o preço
//
//	excluído era o último, a última valoração conhecida do item é mantida e a
//	resposta carrega um warning.
//
// @Tags         precos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do preço"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/precos/{id} [delete]
func (h *PrecoHandler) Delete(c *fiber.Ctx) error {
	warning, err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	resp := fiber.Map{"message": "preço excluído"}
	if warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(resp)
}
