package service

import (
	"time"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/repository/interfaces"

	"github.com/google/uuid"
)

// defaultPageSize 未指定或非法时每页的帖子数
const defaultPageSize = 10

// PostService 处理与帖子相关的业务逻辑
type PostService struct {
	auth         SessionValidator
	postRepo     interfaces.PostRepository
	commentRepo  interfaces.CommentRepository
	postLikeRepo interfaces.PostLikeRepository
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(
	auth SessionValidator,
	postRepo interfaces.PostRepository,
	commentRepo interfaces.CommentRepository,
	postLikeRepo interfaces.PostLikeRepository,
) *PostService {
	return &PostService{
		auth:         auth,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		postLikeRepo: postLikeRepo,
	}
}

// GetPosts 按创建时间降序返回一页帖子。
//
// 底层存储只支持按页对齐的读取，而对外的参数是任意的 (offset, maxResults)
// 窗口，所以把 offset 换算成页号和页内偏移：先取第 skip/size 页，
// 窗口跨页时再取下一页拼接，最后在拼接结果上切出精确的窗口。
// 这样不用全表扫描就能支持任意偏移。
func (s *PostService) GetPosts(cookie string, maxResults, offset int) ([]*model.Post, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	size := maxResults
	if size <= 0 {
		size = defaultPageSize
	}
	skip := offset
	if skip < 0 {
		skip = 0
	}

	page := skip / size
	indexInPage := skip % size

	combined, err := s.postRepo.FindLatest(page, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
	}

	if indexInPage != 0 {
		nextPage, err := s.postRepo.FindLatest(page+1, size)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
		}
		combined = append(combined, nextPage...)
	}

	if indexInPage > len(combined) {
		indexInPage = len(combined)
	}
	end := indexInPage + size
	if end > len(combined) {
		end = len(combined)
	}
	window := combined[indexInPage:end]

	result := make([]*model.Post, 0, len(window))
	for _, post := range window {
		if err := s.decoratePost(session.AccountID, post); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, nil
}

// CreatePost 创建一条新帖子，作者为会话对应的账户
func (s *PostService) CreatePost(cookie string, content string) (*model.Post, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New(),
		AccountID: session.AccountID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}

	if err := s.decoratePost(session.AccountID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost 编辑帖子内容，只有作者可以编辑
func (s *PostService) EditPost(cookie string, postID uuid.UUID, content string) (*model.Post, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	if err := assertOwner(post.AccountID, session.AccountID); err != nil {
		return nil, err
	}

	post.Content = content
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}

	if err := s.decoratePost(session.AccountID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 删除帖子，只有作者可以删除。
// 帖子下的评论、评论点赞和帖子点赞在同一事务里级联删除。
func (s *PostService) DeletePost(cookie string, postID uuid.UUID) error {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return err
	}

	post, err := s.findPost(postID)
	if err != nil {
		return err
	}

	if err := assertOwner(post.AccountID, session.AccountID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteCascade(postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}
	return nil
}

// LikePost 给帖子点赞。重复点赞是 no-op，任何已登录账户都可以点赞
func (s *PostService) LikePost(cookie string, postID uuid.UUID) (*model.Post, error) {
	session, err := s.auth.ResolveSession(cookie)
	if err != nil {
		return nil, err
	}

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	like := &model.PostLike{
		PostID:    postID,
		AccountID: session.AccountID,
		CreatedAt: time.Now(),
	}
	if err := s.postLikeRepo.Save(like); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}

	if err := s.decoratePost(session.AccountID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostStats 计算帖子统计信息。只做快速的会话有效性检查
func (s *PostService) GetPostStats(cookie string, postID uuid.UUID) (*model.PostStats, error) {
	if !s.auth.IsSessionValid(cookie) {
		return nil, errors.New(errors.ErrUnauthorized, "无效的会话Cookie")
	}

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.postLikeRepo.CountByPost(post.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询点赞数失败", err)
	}
	commentCount, err := s.commentRepo.CountByPostID(post.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论数失败", err)
	}

	return &model.PostStats{
		TrendingScore: trendingScore(likeCount + commentCount + 50),
	}, nil
}

func (s *PostService) findPost(postID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// decoratePost 填充点赞数、评论数和当前账户是否点过赞
func (s *PostService) decoratePost(accountID uuid.UUID, post *model.Post) error {
	likeCount, err := s.postLikeRepo.CountByPost(post.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询点赞数失败", err)
	}
	commentCount, err := s.commentRepo.CountByPostID(post.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询评论数失败", err)
	}
	isLiked, err := s.postLikeRepo.Exists(post.ID, accountID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询点赞状态失败", err)
	}

	post.LikeCount = likeCount
	post.CommentCount = commentCount
	post.IsLiked = isLiked
	return nil
}

type PostServiceInterface interface {
	GetPosts(cookie string, maxResults, offset int) ([]*model.Post, error)
	CreatePost(cookie string, content string) (*model.Post, error)
	EditPost(cookie string, postID uuid.UUID, content string) (*model.Post, error)
	DeletePost(cookie string, postID uuid.UUID) error
	LikePost(cookie string, postID uuid.UUID) (*model.Post, error)
	GetPostStats(cookie string, postID uuid.UUID) (*model.PostStats, error)
}

// 确保 PostService 实现了 PostServiceInterface
var _ PostServiceInterface = (*PostService)(nil)
