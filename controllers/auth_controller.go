package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogapi/models"
	"blogapi/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a local account with a bcrypt password hash and returns
// a fresh session token. Username uniqueness is enforced by the UNIQUE
// index on users.username, so concurrent registrations with the same name
// cannot both succeed.
func (a *AuthController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		utils.Fail(ctx, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Token:        utils.GenerateToken(),
	}

	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(ctx, http.StatusBadRequest, "user already exists")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to create user")
		return
	}

	utils.Message(ctx, http.StatusCreated, "User registered successfully", gin.H{"token": user.Token})
}

// Login verifies user credentials and rotates the session token. The reply
// is identical for an unknown username and a wrong password to avoid
// username enumeration. The previous token stops resolving once the new
// one is stored.
func (a *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token := utils.GenerateToken()
	if err := a.db.Model(&user).Update("token", token).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to store token")
		return
	}

	utils.Message(ctx, http.StatusOK, "Login successful", gin.H{"token": token})
}
