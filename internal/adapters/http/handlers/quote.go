package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteshare/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// DeletedMessage is the body message of a successful DELETE.
const DeletedMessage = "Quote deleted successfully ✅"

// QuoteHandler serves the /quotes endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// ListAll handles GET /quotes/all. No authentication.
//
// @Summary List every quote
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Router /quotes/all [get]
func (h *QuoteHandler) ListAll(c *gin.Context) {
	quotes, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes))
}

// ListMine handles GET /quotes/my.
//
// @Summary List the caller's quotes
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuoteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /quotes/my [get]
func (h *QuoteHandler) ListMine(c *gin.Context) {
	caller, _ := middleware.GetIdentity(c)

	quotes, err := h.service.ListMine(c.Request.Context(), caller)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes))
}

// Create handles POST /quotes.
//
// @Summary Create a quote owned by the caller
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quote body dto.QuoteRequest true "Quote"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	input, ok := bindQuote(c)
	if !ok {
		return
	}

	caller, _ := middleware.GetIdentity(c)

	quote, err := h.service.Create(c.Request.Context(), caller, input)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// Update handles PUT /quotes/:id.
//
// @Summary Replace the text and author of a quote the caller owns
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param quote body dto.QuoteRequest true "Quote"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	input, ok := bindQuote(c)
	if !ok {
		return
	}

	caller, _ := middleware.GetIdentity(c)

	quote, err := h.service.Update(c.Request.Context(), caller, c.Param("id"), input)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// Delete handles DELETE /quotes/:id.
//
// @Summary Delete a quote the caller owns
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	caller, _ := middleware.GetIdentity(c)

	err := h.service.Delete(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: DeletedMessage})
}

// bindQuote decodes and validates the request body. On failure it writes
// the 400 response and returns false.
func bindQuote(c *gin.Context) (domain.QuoteInput, bool) {
	req, err := dto.BindQuote(c)
	if err == nil {
		return req.ToDomain(), true
	}

	var fields dto.FieldErrors
	if errors.As(err, &fields) {
		dto.RespondWithValidationErrors(c, fields)
		return domain.QuoteInput{}, false
	}

	resp := dto.NewErrorResponse(dto.ErrorCodeBadRequest, dto.ErrBinding.Error())
	c.JSON(http.StatusBadRequest, resp.WithTraceID(dto.GetTraceID(c)))

	return domain.QuoteInput{}, false
}
