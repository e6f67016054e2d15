package post

import (
	"net/http"
	"strconv"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/service"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostHandler 处理与帖子相关的HTTP请求
type PostHandler struct {
	postService    service.PostServiceInterface
	commentService service.CommentServiceInterface
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface, commentService service.CommentServiceInterface) *PostHandler {
	return &PostHandler{postService, commentService}
}

// GetPosts 按创建时间降序返回一页帖子
func (h *PostHandler) GetPosts(c *gin.Context) {
	maxResults, _ := strconv.Atoi(c.DefaultQuery("maxResults", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.postService.GetPosts(c.GetHeader("Cookie"), maxResults, offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, posts, "获取帖子列表成功")
}

// CreatePost 处理创建帖子请求
func (h *PostHandler) CreatePost(c *gin.Context) {
	var postData struct {
		Content string `json:"content" binding:"required,notblank"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		util.Logger.Warn("创建帖子失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	post, err := h.postService.CreatePost(c.GetHeader("Cookie"), postData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// EditPost 处理编辑帖子请求，只有作者可以编辑
func (h *PostHandler) EditPost(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	var postData struct {
		Content string `json:"content" binding:"required,notblank"`
	}
	if err := c.ShouldBindJSON(&postData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	post, err := h.postService.EditPost(c.GetHeader("Cookie"), postID, postData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, post, "更新帖子成功")
}

// DeletePost 处理删除帖子请求，只有作者可以删除
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if err := h.postService.DeletePost(c.GetHeader("Cookie"), postID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LikePost 处理帖子点赞请求，重复点赞是 no-op
func (h *PostHandler) LikePost(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	post, err := h.postService.LikePost(c.GetHeader("Cookie"), postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, post, "点赞成功")
}

// GetPostStats 返回帖子的热度统计
func (h *PostHandler) GetPostStats(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	stats, err := h.postService.GetPostStats(c.GetHeader("Cookie"), postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, stats, "获取统计成功")
}

// GetComments 返回帖子下的全部评论
func (h *PostHandler) GetComments(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	comments, err := h.commentService.GetComments(c.GetHeader("Cookie"), postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, comments, "获取评论列表成功")
}

// CreateComment 在帖子下创建评论
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, err := parseID(c, "postId")
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

	comment, err := h.commentService.CreateComment(c.GetHeader("Cookie"), postID, commentData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// parseID 解析路径参数中的UUID
func parseID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrBadRequest, "无效的ID格式", err)
	}
	return id, nil
}
