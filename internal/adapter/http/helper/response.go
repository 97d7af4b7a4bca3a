package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jsontodos/internal/core/model/response"
)

const (
	MessageTodoNotFound     = "Todo not found"
	MessageTodoTextRequired = "Todo text is required"
	MessageTodoDeleted      = "Todo deleted successfully"
	MessageInternalError    = "Internal Server Error"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.MessageResponse{Message: message})
}

func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.ErrorResponse{Error: message})
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFoundError(c *gin.Context) {
	SendError(c, http.StatusNotFound, MessageTodoNotFound)
}

func SendInternalError(c *gin.Context) {
	SendError(c, http.StatusInternalServerError, MessageInternalError)
}

func SendTooManyRequests(c *gin.Context, message string) {
	SendError(c, http.StatusTooManyRequests, message)
}
