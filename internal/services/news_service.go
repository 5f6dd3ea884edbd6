package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// NewsService handles article and engagement business logic
type NewsService struct {
	newsRepo repositories.NewsRepository
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewNewsService creates a new NewsService
func NewNewsService(newsRepo repositories.NewsRepository, userRepo repositories.UserRepository, logger *zap.Logger) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// List retrieves articles matching the filter with author identities
// resolved. Comment logs are omitted from list views.
func (s *NewsService) List(ctx context.Context, filter repositories.NewsFilter, page, limit int) ([]*models.NewsView, models.Pagination, error) {
	articles, total, err := s.newsRepo.Find(ctx, filter, page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}

	authorIDs := make([]primitive.ObjectID, 0, len(articles))
	for _, article := range articles {
		authorIDs = append(authorIDs, article.Author)
	}
	refs, err := s.userRefs(ctx, authorIDs)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}

	views := make([]*models.NewsView, 0, len(articles))
	for _, article := range articles {
		view := s.newsView(article, refs)
		view.Comments = nil
		views = append(views, view)
	}
	return views, models.NewPagination(page, limit, total), nil
}

// Get retrieves one article with author and commenter identities resolved,
// incrementing the view counter as a side effect. Every fetch counts.
func (s *NewsService) Get(ctx context.Context, id primitive.ObjectID) (*models.NewsView, error) {
	article, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}

	if err := s.newsRepo.IncrementViews(ctx, id); err != nil {
		// The article itself still renders; losing one view tick is acceptable.
		s.logger.Warn("failed to increment view counter",
			zap.String("newsId", id.Hex()),
			zap.Error(err))
	} else {
		article.Views++
	}

	ids := []primitive.ObjectID{article.Author}
	for _, comment := range article.Comments {
		ids = append(ids, comment.User)
	}
	refs, err := s.userRefs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.newsView(article, refs), nil
}

// Create creates an article owned by the caller. Status defaults to draft;
// creating directly as published stamps publishedAt.
func (s *NewsService) Create(ctx context.Context, authorID primitive.ObjectID, req *models.CreateNewsRequest) (*models.NewsView, error) {
	if !models.ValidNewsCategory(req.Category) {
		return nil, apperrors.Validation("Validation failed", "Invalid category")
	}

	article := models.NewNews()
	article.Title = req.Title
	article.Excerpt = req.Excerpt
	article.Content = req.Content
	article.Category = req.Category
	article.Author = authorID
	article.FeaturedImage = req.FeaturedImage
	article.Tags = req.Tags

	if req.Status != "" {
		if !validNewsStatus(req.Status) {
			return nil, apperrors.Validation("Validation failed", "Invalid status")
		}
		article.Status = models.NewsStatus(req.Status)
	}
	if article.Status == models.NewsStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.newsRepo.Create(ctx, article); err != nil {
		return nil, apperrors.Internal(err)
	}

	refs, err := s.userRefs(ctx, []primitive.ObjectID{authorID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.newsView(article, refs), nil
}

// Update applies a partial update after checking ownership. The first
// transition to published stamps publishedAt; the stamp never changes
// afterwards.
func (s *NewsService) Update(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID, req *models.UpdateNewsRequest) (*models.NewsView, error) {
	article, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	if !models.CanMutate(actorID, actorRole, article.Author) {
		return nil, apperrors.Forbidden("Not authorized to update this news article")
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Category != nil {
		if !models.ValidNewsCategory(*req.Category) {
			return nil, apperrors.Validation("Validation failed", "Invalid category")
		}
		article.Category = *req.Category
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		article.Tags = req.Tags
	}
	if req.Status != nil {
		if !validNewsStatus(*req.Status) {
			return nil, apperrors.Validation("Validation failed", "Invalid status")
		}
		article.Status = models.NewsStatus(*req.Status)
		if article.Status == models.NewsStatusPublished && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
	}

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, s.translate(err)
	}

	refs, err := s.userRefs(ctx, []primitive.ObjectID{article.Author})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.newsView(article, refs), nil
}

// Delete deletes an article after checking ownership.
func (s *NewsService) Delete(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID) error {
	article, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return s.translate(err)
	}
	if !models.CanMutate(actorID, actorRole, article.Author) {
		return apperrors.Forbidden("Not authorized to delete this news article")
	}
	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

// ToggleLike flips the caller's like on the article: present entries are
// removed, absent ones added.
func (s *NewsService) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*models.LikeResult, error) {
	article, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}

	var liked bool
	if article.LikedBy(userID) {
		if _, err := s.newsRepo.RemoveLike(ctx, id, userID); err != nil {
			return nil, s.translate(err)
		}
		liked = false
	} else {
		added, err := s.newsRepo.AddLike(ctx, id, models.Like{User: userID, CreatedAt: time.Now()})
		if err != nil {
			return nil, s.translate(err)
		}
		liked = added
	}

	article, err = s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return &models.LikeResult{Liked: liked, LikeCount: article.LikeCount()}, nil
}

// AddComment appends a comment to the article's log and returns it with the
// commenter identity resolved.
func (s *NewsService) AddComment(ctx context.Context, id, userID primitive.ObjectID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Validation failed", "Comment content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, apperrors.Validation("Validation failed", "Comment cannot exceed 1000 characters")
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.newsRepo.AddComment(ctx, id, comment); err != nil {
		return nil, s.translate(err)
	}

	refs, err := s.userRefs(ctx, []primitive.ObjectID{userID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.CommentView{Comment: comment, User: refs[userID]}, nil
}

func (s *NewsService) newsView(article *models.News, refs map[primitive.ObjectID]models.UserRef) *models.NewsView {
	view := &models.NewsView{
		News:         article,
		Author:       refs[article.Author],
		LikeCount:    article.LikeCount(),
		CommentCount: article.CommentCount(),
	}
	for _, comment := range article.Comments {
		view.Comments = append(view.Comments, models.CommentView{
			Comment: comment,
			User:    refs[comment.User],
		})
	}
	return view
}

func (s *NewsService) userRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	users, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[primitive.ObjectID]models.UserRef, len(users))
	for _, user := range users {
		refs[user.ID] = user.Ref()
	}
	return refs, nil
}

func (s *NewsService) translate(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("News article not found")
	}
	return apperrors.Internal(err)
}

func validNewsStatus(status string) bool {
	switch models.NewsStatus(status) {
	case models.NewsStatusDraft, models.NewsStatusPublished, models.NewsStatusArchived:
		return true
	}
	return false
}
