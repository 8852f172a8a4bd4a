package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UsersController struct {
	store UserStore
}

func NewUsersController(store UserStore) *UsersController {
	return &UsersController{
		store: store,
	}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
	Phone string `json:"phone" binding:"max=32"`
}

// ListUsers handles GET /api/users
func (controller *UsersController) ListUsers(c *gin.Context) {
	users, err := controller.store.ListUsers(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id
func (controller *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users
func (controller *UsersController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := controller.store.CreateUser(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		respondDomainError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}
