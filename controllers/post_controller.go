package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/utils"
)

// PostController manages CRUD operations for posts. Reads are public;
// every mutation runs behind the auth middleware and checks that the
// requester is the author.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if title == "" || content == "" {
		utils.Fail(ctx, http.StatusBadRequest, "title and content are required")
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	post := models.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.Message(ctx, http.StatusCreated, "Post created", gin.H{"postId": post.ID})
}

// ListPosts returns all posts ordered by creation time, newest first.
// No authentication required: blog reads are public.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:posts:list"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}

	utils.CacheSetJSON("cache:posts:list", posts, utils.CacheTTL())
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}

	cacheKey := "cache:post:detail:" + strconv.Itoa(id)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	utils.CacheSetJSON(cacheKey, post, utils.CacheTTL())
	ctx.JSON(http.StatusOK, post)
}

// UpdatePost lets the author patch title and/or content. Absent or empty
// fields are left unchanged; UpdatedAt is touched only when a field
// actually changed value, so a no-op update leaves the record as-is.
// Existence is checked before ownership.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	// a missing body counts as a no-op update, not a client error
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	if post.UserID != userID {
		utils.Fail(ctx, http.StatusForbidden, "you can only modify your own post")
		return
	}

	updated := false
	if title := utils.Sanitize(strings.TrimSpace(req.Title)); title != "" && title != post.Title {
		post.Title = title
		updated = true
	}
	if content := utils.Sanitize(strings.TrimSpace(req.Content)); content != "" && content != post.Content {
		post.Content = content
		updated = true
	}

	if updated {
		if err := p.db.Save(&post).Error; err != nil {
			utils.Fail(ctx, http.StatusInternalServerError, "failed to update post")
			return
		}
		utils.InvalidateByPrefix("cache:posts:list")
		utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(id))
	}

	utils.Message(ctx, http.StatusOK, "Post updated", nil)
}

// DeletePost removes a post owned by the requester. Existence is checked
// before ownership, so a non-owner learns the post exists (403 not 404).
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	if post.UserID != userID {
		utils.Fail(ctx, http.StatusForbidden, "you can only delete your own post")
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(id))
	utils.Message(ctx, http.StatusOK, "Post deleted", nil)
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
