package comment

import (
	"net/http"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommentHandler 处理与评论相关的HTTP请求
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler 创建一个新的 CommentHandler 实例
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService}
}

// EditComment 处理编辑评论请求，只有作者可以编辑
func (h *CommentHandler) EditComment(c *gin.Context) {
	commentID, err := parseID(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	var commentData struct {
		Content string `json:"content" binding:"required,notblank"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	comment, err := h.commentService.EditComment(c.GetHeader("Cookie"), commentID, commentData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, comment, "更新评论成功")
}

// DeleteComment 处理删除评论请求，只有作者可以删除
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseID(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if err := h.commentService.DeleteComment(c.GetHeader("Cookie"), commentID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LikeComment 处理评论点赞请求，重复点赞是 no-op
func (h *CommentHandler) LikeComment(c *gin.Context) {
	commentID, err := parseID(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	comment, err := h.commentService.LikeComment(c.GetHeader("Cookie"), commentID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, comment, "点赞成功")
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrBadRequest, "无效的ID格式", err)
	}
	return id, nil
}
