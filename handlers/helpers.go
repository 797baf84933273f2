package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kajalsharma987/my-leave-app/models"
	"github.com/kajalsharma987/my-leave-app/services"
)

// notice is the title+message pair the frontend shows in its message
// box; every handler response carries one.
func notice(title, message string) map[string]any {
	return map[string]any{"title": title, "message": message}
}

// httpError wraps a service error as an HTTP error whose body is the
// notice the UI displays.
func httpError(title string, err error) error {
	status := http.StatusBadRequest
	switch services.KindOf(err) {
	case services.KindDuplicateUsername:
		status = http.StatusConflict
	case services.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case services.KindNotFound:
		status = http.StatusNotFound
	}
	return echo.NewHTTPError(status, notice(title, err.Error()))
}

// currentUser reads the identity RequireAuth attached to the context.
func currentUser(c echo.Context) (models.User, bool) {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	if username == "" || role == "" {
		return models.User{}, false
	}
	return models.User{Username: username, Role: role}, true
}
