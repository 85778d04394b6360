package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jmacedo/pca-api/internal/application/anexo"
	"github.com/jmacedo/pca-api/internal/application/dto"
)

// AnexoHandler trata upload, download e listagem de anexos (protegido).
type AnexoHandler struct {
	uc *anexo.UseCase
}

// NewAnexoHandler constrói o handler.
func NewAnexoHandler(uc *anexo.UseCase) *AnexoHandler {
	return &AnexoHandler{uc: uc}
}

// Upload godoc
// @Summary      Anexar arquivo a uma entidade
// @Tags         anexos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        tipo_entidade  formData  string  true  "PCA | DEMANDA | ITEM | PRECO"
// @Param        entidade_id    formData  string  true  "ID da entidade"
// @Param        arquivo        formData  file    true  "Arquivo"
// @Success      201  {object}  dto.AnexoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/anexos [post]
func (h *AnexoHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo de formulário 'arquivo' é obrigatório"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return respondErr(c, err)
	}
	defer f.Close()
	conteudo, err := io.ReadAll(f)
	if err != nil {
		return respondErr(c, err)
	}
	out, err := h.uc.Upload(
		c.Context(),
		GetUserID(c),
		c.FormValue("tipo_entidade"),
		c.FormValue("entidade_id"),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		conteudo,
	)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByEntidade godoc
// @Summary      Listar anexos de uma entidade
// @Tags         anexos
// @Security     Bearer
// @Produce      json
// @Param        tipo_entidade  query  string  true  "PCA | DEMANDA | ITEM | PRECO"
// @Param        entidade_id    query  string  true  "ID da entidade"
// @Success      200  {array}  dto.AnexoResponse
// @Router       /api/anexos [get]
func (h *AnexoHandler) ListByEntidade(c *fiber.Ctx) error {
	tipo, id := c.Query("tipo_entidade"), c.Query("entidade_id")
	if tipo == "" || id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo_entidade e entidade_id são obrigatórios"})
	}
	out, err := h.uc.ListByEntidade(tipo, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Baixar um anexo
// @Tags         anexos
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id  path  string  true  "ID do anexo"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/anexos/{id} [get]
func (h *AnexoHandler) Download(c *fiber.Ctx) error {
	meta, conteudo, err := h.uc.Download(c.Context(), c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	contentType := meta.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, meta.NomeArquivo))
	return c.Send(conteudo)
}

// Delete godoc
// @Summary      Excluir anexo
// @Description  Exclusão lógica dos metadados; o arquivo permanece no armazenamento.
// @Tags         anexos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do anexo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/anexos/{id} [delete]
func (h *AnexoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "anexo excluído"})
}
