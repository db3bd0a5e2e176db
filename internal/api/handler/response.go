package handler

import "github.com/labstack/echo/v4"

// apiResponse is the success envelope used across the API.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{Success: true, Data: data, Message: message})
}
