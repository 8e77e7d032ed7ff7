package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bookmarks/internal/service"
	"github.com/d60-Lab/bookmarks/pkg/response"
)

// Handler 聚合所有 API 处理器
type Handler struct {
	userService  service.UserService
	relService   service.RelationshipService
	feedService  service.FeedService
	imageService service.ImageService
	ranking      *service.RankingService
}

func New(userService service.UserService, relService service.RelationshipService, feedService service.FeedService, imageService service.ImageService, ranking *service.RankingService) *Handler {
	return &Handler{
		userService:  userService,
		relService:   relService,
		feedService:  feedService,
		imageService: imageService,
		ranking:      ranking,
	}
}

// respondServiceError translates service sentinels into the JSON envelope.
// Anything unrecognised is an internal error (and reaches sentry via the
// gin error list).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrImageNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidImageURL):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
