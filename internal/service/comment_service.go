package service

import (
	"time"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/repository/interfaces"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
)

// CommentService 处理与评论相关的业务逻辑
type CommentService struct {
	auth            SessionValidator
	commentRepo     interfaces.CommentRepository
	postRepo        interfaces.PostRepository
	commentLikeRepo interfaces.CommentLikeRepository
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(
	auth SessionValidator,
	commentRepo interfaces.CommentRepository,
	postRepo interfaces.PostRepository,
	commentLikeRepo interfaces.CommentLikeRepository,
) *CommentService {
	return &CommentService{
		auth:            auth,
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		commentLikeRepo: commentLikeRepo,
	}
}

// GetComments 返回帖子下的全部评论。只做快速的会话有效性检查
func (s *CommentService) GetComments(cookie string, postID uuid.UUID) ([]*model.Comment, error) {
	if !s.auth.IsSessionValid(cookie) {
		return nil, errors.New(errors.ErrUnauthorized, "无效的会话Cookie")
	}

	// 会话已通过校验，这里的解析必定成功
	parsed, err := util.ParseSessionCookie(cookie)
	if err != nil || parsed == nil {
		return nil, errors.New(errors.ErrUnauthorized, "无效的会话Cookie")
	}

	comments, err := s.commentRepo.FindByPostID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论列表失败", err)
	}

	result := make([]*model.Comment, 0, len(comments))
	for _, comment := range comments {
		if err := s.decorateComment(parsed.AccountID, comment); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, nil
}

// CreateComment 在已存在的帖子下创建评论
func (s *CommentService) CreateComment(cookie string, postID uuid.UUID, content string) (*model.Comment, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	exists, err := s.postRepo.ExistsByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if !exists {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AccountID: session.AccountID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}

	if err := s.decorateComment(session.AccountID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment 编辑评论内容，只有作者可以编辑
func (s *CommentService) EditComment(cookie string, commentID uuid.UUID, content string) (*model.Comment, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(commentID)
	if err != nil {
		return nil, err
	}

	if err := assertOwner(comment.AccountID, session.AccountID); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新评论失败", err)
	}

	if err := s.decorateComment(session.AccountID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 删除评论，只有作者可以删除。评论的点赞记录级联删除
func (s *CommentService) DeleteComment(cookie string, commentID uuid.UUID) error {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return err
	}

	comment, err := s.findComment(commentID)
	if err != nil {
		return err
	}

	if err := assertOwner(comment.AccountID, session.AccountID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteCascade(commentID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除评论失败", err)
	}
	return nil
}

// LikeComment 给评论点赞。重复点赞是 no-op，任何已登录账户都可以点赞
func (s *CommentService) LikeComment(cookie string, commentID uuid.UUID) (*model.Comment, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(commentID)
	if err != nil {
		return nil, err
	}

	like := &model.CommentLike{
		CommentID: commentID,
		AccountID: session.AccountID,
		CreatedAt: time.Now(),
	}
	if err := s.commentLikeRepo.Save(like); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}

	if err := s.decorateComment(session.AccountID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) findComment(commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	if comment == nil {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}
	return comment, nil
}

// decorateComment 填充点赞数和当前账户是否点过赞
func (s *CommentService) decorateComment(accountID uuid.UUID, comment *model.Comment) error {
	likeCount, err := s.commentLikeRepo.CountByComment(comment.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询点赞数失败", err)
	}
	isLiked, err := s.commentLikeRepo.Exists(comment.ID, accountID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询点赞状态失败", err)
	}

	comment.LikeCount = likeCount
	comment.IsLiked = isLiked
	return nil
}

type CommentServiceInterface interface {
	GetComments(cookie string, postID uuid.UUID) ([]*model.Comment, error)
	CreateComment(cookie string, postID uuid.UUID, content string) (*model.Comment, error)
	EditComment(cookie string, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(cookie string, commentID uuid.UUID) error
	LikeComment(cookie string, commentID uuid.UUID) (*model.Comment, error)
}

// 确保 CommentService 实现了 CommentServiceInterface
var _ CommentServiceInterface = (*CommentService)(nil)
