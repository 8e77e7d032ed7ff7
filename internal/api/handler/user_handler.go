package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bookmarks/internal/middleware"
	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/service"
	"github.com/d60-Lab/bookmarks/pkg/response"
)

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func toUserView(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Bio: u.Bio, Location: u.Location, PhotoURL: u.PhotoURL}
}

// ListUsers 活跃用户列表（people 页）
// @Summary 用户列表
// @Tags 账户
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))
	res, err := h.userService.ListActive(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	views := make([]userView, len(res.Items))
	for i, u := range res.Items {
		views[i] = toUserView(u)
	}
	response.Success(c, gin.H{"page": res.Page, "page_size": res.PageSize, "total": res.Total, "list": views})
}

// GetUser 用户详情（含最近书签与关注状态）
// @Summary 用户详情
// @Tags 账户
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	images, err := h.imageService.ListByUser(c.Request.Context(), user.ID, 1, 12)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	following, err := h.relService.IsFollowing(c.Request.Context(), middleware.CurrentUserID(c), user.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":      toUserView(user),
		"images":    images,
		"following": following,
	})
}

// UpdateMe 编辑本人资料
// @Summary 编辑资料
// @Tags 账户
// @Accept json
// @Produce json
// @Param request body service.ProfileUpdate true "资料变更"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	var upd service.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, toUserView(u))
}
