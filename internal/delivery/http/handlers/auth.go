package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	userdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/user"
	useruc "github.com/mathbridge/mathbridge-backend/internal/usecase/user"
)

type AuthHandler struct {
	userUc useruc.UserUsecase
}

func NewAuthHandler(userUc useruc.UserUsecase) *AuthHandler {
	return &AuthHandler{userUc: userUc}
}

type registerBody struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.userUc.Register(&userdto.RegisterInput{
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.userUc.Login(&userdto.LoginInput{Email: body.Email, Password: body.Password})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
