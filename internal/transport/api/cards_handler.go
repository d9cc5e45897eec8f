package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/gin-gonic/gin"
)

type CardsHandler struct {
	cardService CardServicer
	loc         *time.Location
}

func NewCardsHandler(cardService CardServicer, loc *time.Location) *CardsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CardsHandler{
		cardService: cardService,
		loc:         loc,
	}
}

// Index GET RouteGroup + CardsRoute. Paginated, filtered and ordered card listing.
func (h *CardsHandler) Index(c *gin.Context) {
	var params ListCardsParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx := c.Request.Context()

	page, err := h.cardService.FindAll(ctx, service.ListCardsArgs{
		Filter:    params.toArgs(),
		Page:      deref(params.Page),
		PageSize:  deref(params.PageSize),
		SortBy:    params.SortBy,
		SortOrder: repoargs.SortOrder(params.SortOrder),
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "", CardListResponse{
		List: newCardListResponse(page.Cards),
		Pagination: PaginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	})
}

// Show GET RouteGroup + CardRoute.
func (h *CardsHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	card, err := h.cardService.FindByID(ctx, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "", newCardResponse(card))
}

// ShowByNumber GET RouteGroup + CardByNumberRoute.
func (h *CardsHandler) ShowByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	card, err := h.cardService.FindByCardNumber(ctx, c.Param("cardNumber"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "", newCardResponse(card))
}

// Create POST RouteGroup + CardsRoute.
func (h *CardsHandler) Create(c *gin.Context) {
	var params CreateCardParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}
	in, err := params.toInput(h.loc)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	ctx := c.Request.Context()

	card, err := h.cardService.Create(ctx, in)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, "会员卡创建成功", newCardResponse(card))
}

// BulkCreate POST RouteGroup + CardsBulkRoute. Rows with a card number already stored are skipped.
func (h *CardsHandler) BulkCreate(c *gin.Context) {
	var params BulkCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		abortWithMessage(c, http.StatusBadRequest, msgInvalidData)
		return
	}

	inputs := make([]domain.CardInput, len(params.Cards))
	for i, p := range params.Cards {
		in, err := p.toInput(h.loc)
		if err != nil {
			abortWithMessage(c, http.StatusBadRequest, fmt.Sprintf("第 %d 条数据: %s", i+1, msgInvalidDate))
			return
		}
		inputs[i] = in
	}

	h.bulkCreate(c, inputs)
}

func (h *CardsHandler) bulkCreate(c *gin.Context, inputs []domain.CardInput) {
	ctx := c.Request.Context()

	res, err := h.cardService.BulkCreate(ctx, inputs)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, fmt.Sprintf("成功导入 %d 张会员卡", len(res.Created)), BulkCreateResponse{
		Created: len(res.Created),
		Skipped: res.Skipped,
	})
}

// Update PUT RouteGroup + CardRoute. Partial update, absent fields are kept.
func (h *CardsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params UpdateCardParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}
	upd, err := params.toUpdate(h.loc)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	ctx := c.Request.Context()

	card, err := h.cardService.Update(ctx, id, upd)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "会员卡更新成功", newCardResponse(card))
}

// Delete DELETE RouteGroup + CardRoute.
func (h *CardsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if err := h.cardService.Delete(ctx, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "会员卡删除成功", nil)
}

// BulkDelete DELETE RouteGroup + CardsBulkDeleteRoute.
func (h *CardsHandler) BulkDelete(c *gin.Context) {
	var params BulkDeleteParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		abortWithMessage(c, http.StatusBadRequest, "无效的 ID 列表")
		return
	}

	ctx := c.Request.Context()

	deleted, err := h.cardService.BulkDelete(ctx, params.IDs)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, fmt.Sprintf("成功删除 %d 张会员卡", deleted), BulkDeleteResponse{DeletedCount: deleted})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}
