package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/middleware"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	RoleID    int64  `json:"role_id" binding:"required,gt=0"`
	StudentID *int64 `json:"student_id" binding:"omitempty,gt=0"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (api *API) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.respondError(c, err)
		return
	}

	created, err := api.store.CreateUser(c.Request.Context(), rbac.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		RoleID:       req.RoleID,
		StudentID:    req.StudentID,
	})
	if err != nil {
		api.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "account created")
}

func (api *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := api.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			api.unauthorized(c)
			return
		}
		api.respondError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		api.unauthorized(c)
		return
	}

	role, err := api.store.GetRole(c.Request.Context(), user.RoleID)
	if err != nil && !apperr.IsNotFound(err) {
		api.respondError(c, err)
		return
	}

	token, err := middleware.IssueToken(api.cfg.Auth.JWTSecret, api.cfg.Auth.TokenTTL,
		user.ID, user.Email, role.RoleName)
	if err != nil {
		api.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"token": token, "user": user}, "login successful")
}

func (api *API) unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response{Success: false, Error: "invalid credentials"})
}
