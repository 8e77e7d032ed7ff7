package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bookmarks/internal/middleware"
	"github.com/d60-Lab/bookmarks/pkg/response"
)

// Dashboard 个人动态流
// @Summary 动态流（关注的人的动作；未关注任何人时展示全站动作）
// @Tags 动态
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router /api/v1/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	// 非数字页码回落到第 1 页
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	feed, err := h.feedService.Feed(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, feed)
}
