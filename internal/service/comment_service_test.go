package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// sessionCookieFor 构造格式正确的会话Cookie
func sessionCookieFor(accountID uuid.UUID) string {
	return fmt.Sprintf("session=%s:test-token", accountID)
}

// TestGetComments 列表接口只做宽松校验，并填充点赞信息
func TestGetComments(t *testing.T) {
	requester := uuid.New()
	postID := uuid.New()
	comments := []*model.Comment{
		{ID: uuid.New(), PostID: postID, AccountID: uuid.New(), Content: "第一条"},
		{ID: uuid.New(), PostID: postID, AccountID: requester, Content: "第二条"},
	}

	mockComments := new(MockCommentRepository)
	mockComments.On("FindByPostID", postID).Return(comments, nil)
	mockLikes := new(MockCommentLikeRepository)
	mockLikes.On("CountByComment", comments[0].ID).Return(int64(3), nil)
	mockLikes.On("CountByComment", comments[1].ID).Return(int64(0), nil)
	mockLikes.On("Exists", comments[0].ID, requester).Return(true, nil)
	mockLikes.On("Exists", comments[1].ID, requester).Return(false, nil)

	auth := &stubSessionValidator{valid: true}
	service := NewCommentService(auth, mockComments, new(MockPostRepository), mockLikes)

	result, err := service.GetComments(sessionCookieFor(requester), postID)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(3), result[0].LikeCount)
	assert.True(t, result[0].IsLiked)
	assert.False(t, result[1].IsLiked)

	// 会话无效时直接拒绝，不触发查询
	auth.valid = false
	_, err = service.GetComments(sessionCookieFor(requester), postID)
	assertAuthFailure(t, err)
	mockComments.AssertNumberOfCalls(t, "FindByPostID", 1)
}

// TestCreateComment 评论必须挂在已存在的帖子下
func TestCreateComment(t *testing.T) {
	accountID := uuid.New()
	postID := uuid.New()

	mockComments := new(MockCommentRepository)
	mockComments.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)
	mockPosts := new(MockPostRepository)
	mockPosts.On("ExistsByID", postID).Return(true, nil)
	mockLikes := new(MockCommentLikeRepository)
	mockLikes.On("CountByComment", mock.Anything).Return(int64(0), nil)
	mockLikes.On("Exists", mock.Anything, accountID).Return(false, nil)

	auth := &stubSessionValidator{session: &model.Session{AccountID: accountID}}
	service := NewCommentService(auth, mockComments, mockPosts, mockLikes)

	comment, err := service.CreateComment("session=x", postID, "不错")
	assert.NoError(t, err)
	assert.Equal(t, postID, comment.PostID)
	assert.Equal(t, accountID, comment.AccountID)
	assert.Equal(t, "不错", comment.Content)
	mockComments.AssertExpectations(t)

	// 目标帖子不存在
	ghost := uuid.New()
	mockPosts.On("ExistsByID", ghost).Return(false, nil)
	_, err = service.CreateComment("session=x", ghost, "x")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
	mockComments.AssertNumberOfCalls(t, "Create", 1)
}

// TestEditComment 只有作者能编辑评论
func TestEditComment(t *testing.T) {
	owner := uuid.New()
	comment := &model.Comment{ID: uuid.New(), PostID: uuid.New(), AccountID: owner, Content: "old", CreatedAt: time.Now()}

	mockComments := new(MockCommentRepository)
	mockComments.On("FindByID", comment.ID).Return(comment, nil)
	mockComments.On("Update", comment).Return(nil)
	mockLikes := new(MockCommentLikeRepository)
	mockLikes.On("CountByComment", comment.ID).Return(int64(0), nil)
	mockLikes.On("Exists", comment.ID, mock.Anything).Return(false, nil)

	auth := &stubSessionValidator{session: &model.Session{AccountID: owner}}
	service := NewCommentService(auth, mockComments, new(MockPostRepository), mockLikes)

	updated, err := service.EditComment("session=x", comment.ID, "new")
	assert.NoError(t, err)
	assert.Equal(t, "new", updated.Content)

	// 其他账户编辑被拒绝
	auth.session = &model.Session{AccountID: uuid.New()}
	_, err = service.EditComment("session=x", comment.ID, "hijack")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	mockComments.AssertNumberOfCalls(t, "Update", 1)
}

// TestDeleteComment 只有作者能删除，删除走级联
func TestDeleteComment(t *testing.T) {
	owner := uuid.New()
	comment := &model.Comment{ID: uuid.New(), AccountID: owner}

	mockComments := new(MockCommentRepository)
	mockComments.On("FindByID", comment.ID).Return(comment, nil)
	mockComments.On("DeleteCascade", comment.ID).Return(nil)

	auth := &stubSessionValidator{session: &model.Session{AccountID: owner}}
	service := NewCommentService(auth, mockComments, new(MockPostRepository), new(MockCommentLikeRepository))

	assert.NoError(t, service.DeleteComment("session=x", comment.ID))
	mockComments.AssertCalled(t, "DeleteCascade", comment.ID)

	// 非作者删除被拒绝
	auth.session = &model.Session{AccountID: uuid.New()}
	err := service.DeleteComment("session=x", comment.ID)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	mockComments.AssertNumberOfCalls(t, "DeleteCascade", 1)

	// 评论不存在
	ghost := uuid.New()
	mockComments.On("FindByID", ghost).Return(nil, nil)
	err = service.DeleteComment("session=x", ghost)
	assert.Error(t, err)
	appErr, ok = err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCommentNotFound, appErr.Code)
}

// TestLikeComment 点赞不做所有者校验，重复点赞后计数仍为1
func TestLikeComment(t *testing.T) {
	liker := uuid.New()
	comment := &model.Comment{ID: uuid.New(), AccountID: uuid.New()}

	mockComments := new(MockCommentRepository)
	mockComments.On("FindByID", comment.ID).Return(comment, nil)
	mockLikes := new(MockCommentLikeRepository)
	mockLikes.On("Save", mock.AnythingOfType("*model.CommentLike")).Return(nil)
	mockLikes.On("CountByComment", comment.ID).Return(int64(1), nil)
	mockLikes.On("Exists", comment.ID, liker).Return(true, nil)

	auth := &stubSessionValidator{session: &model.Session{AccountID: liker}}
	service := NewCommentService(auth, mockComments, new(MockPostRepository), mockLikes)

	liked, err := service.LikeComment("session=x", comment.ID)
	assert.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, int64(1), liked.LikeCount)

	liked, err = service.LikeComment("session=x", comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikeCount)
	mockLikes.AssertNumberOfCalls(t, "Save", 2)
}
