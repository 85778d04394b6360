package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
)

// AuditoriaHandler expõe a consulta da trilha de auditoria (protegido).
type AuditoriaHandler struct {
	uc *auditoria.ConsultaUseCase
}

// NewAuditoriaHandler constrói o handler.
func NewAuditoriaHandler(uc *auditoria.ConsultaUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// ListByEntidade godoc
// @Summary      Trilha de auditoria de uma entidade
// @Description  Registros imutáveis, mais recentes primeiro.
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        tipo_entidade  query  string  true   "PCA | DEMANDA | ITEM | PRECO | FORNECEDOR | ANEXO"
// @Param        entidade_id    query  string  true   "ID da entidade"
// @Param        limit          query  int     false  "Tamanho da página (padrão 20)"
// @Param        offset         query  int     false  "Deslocamento"
// @Success      200  {object}  dto.AuditoriaListResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) ListByEntidade(c *fiber.Ctx) error {
	tipo, id := c.Query("tipo_entidade"), c.Query("entidade_id")
	if tipo == "" || id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo_entidade e entidade_id são obrigatórios"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListByEntidade(tipo, id, page.Limit, page.Offset)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}
