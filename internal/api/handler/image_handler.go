package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bookmarks/internal/middleware"
	"github.com/d60-Lab/bookmarks/pkg/response"
)

type createImageRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	URL         string `json:"url" binding:"required,max=2000,imageurl"`
	Description string `json:"description"`
}

type likeRequest struct {
	ID     string `json:"id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

// CreateImage 收藏一张网络图片
// @Summary 新建图片书签
// @Tags 图片
// @Accept json
// @Produce json
// @Param request body createImageRequest true "图片信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/images [post]
func (h *Handler) CreateImage(c *gin.Context) {
	var req createImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	img, err := h.imageService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.Title, req.URL, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, img)
}

// GetImage 图片详情，访问即计一次浏览
// @Summary 图片详情
// @Tags 图片
// @Param id path string true "图片ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/images/{id} [get]
func (h *Handler) GetImage(c *gin.Context) {
	img, views, err := h.imageService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	liked, err := h.imageService.IsLikedBy(c.Request.Context(), middleware.CurrentUserID(c), img.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"image": img, "total_views": views, "liked": liked})
}

// ListImages 最新图片列表
// @Summary 图片列表
// @Tags 图片
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.ImagePage}
// @Router /api/v1/images [get]
func (h *Handler) ListImages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "8"))
	res, err := h.imageService.ListRecent(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// LikeImage 点赞 / 取消点赞（action 令牌二选一）
// @Summary 点赞或取消点赞
// @Tags 图片
// @Accept json
// @Produce json
// @Param request body likeRequest true "目标图片与动作"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/images/like [post]
func (h *Handler) LikeImage(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewerID := middleware.CurrentUserID(c)
	if req.Action == "like" {
		liked, err := h.imageService.Like(c.Request.Context(), viewerID, req.ID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.Success(c, gin.H{"liked": true, "created": liked})
		return
	}
	removed, err := h.imageService.Unlike(c.Request.Context(), viewerID, req.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"liked": false, "removed": removed})
}

// ImageRanking 浏览量排行（缓存不可用时返回空列表）
// @Summary 最多浏览排行
// @Tags 图片
// @Param count query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/images/ranking [get]
func (h *Handler) ImageRanking(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "10"))
	images, err := h.ranking.MostViewedImages(c.Request.Context(), count)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"most_viewed": images})
}
