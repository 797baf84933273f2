package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kajalsharma987/my-leave-app/models"
	"github.com/kajalsharma987/my-leave-app/services"
)

type LeaveHandler struct {
	Service *services.Service
}

func NewLeaveHandler(svc *services.Service) *LeaveHandler {
	return &LeaveHandler{Service: svc}
}

// POST /leaves
func (h *LeaveHandler) Create(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
	}

	var in services.LeaveInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	leave, err := h.Service.Submit(user, in)
	if err != nil {
		return httpError("Leave Request Error", err)
	}

	resp := notice("Success", "Leave request submitted successfully!")
	resp["leave"] = leave
	return c.JSON(http.StatusCreated, resp)
}

// GET /leaves/mine
func (h *LeaveHandler) Mine(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
	}
	return c.JSON(http.StatusOK, h.Service.MyLeaves(user.Username))
}

// GET /leaves/day-count?start=YYYY-MM-DD&end=YYYY-MM-DD
//
// Live recompute for the request form: the day count is derived from the
// two dates on every change, never cached client state.
func (h *LeaveHandler) DayCount(c echo.Context) error {
	days := services.DayCount(c.QueryParam("start"), c.QueryParam("end"))
	return c.JSON(http.StatusOK, map[string]any{"numberOfDays": days})
}

// GET /teachers
func (h *LeaveHandler) Teachers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"teachers": h.Service.Teachers()})
}

// GET /teacher/leave-requests
func (h *LeaveHandler) TeacherQueue(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
	}
	return c.JSON(http.StatusOK, h.Service.TeacherQueue(user.Username))
}

// GET /admin/leave-requests
func (h *LeaveHandler) AdminQueue(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.AdminQueue())
}

// POST /teacher/leave-requests/:id/approve
func (h *LeaveHandler) TeacherApprove(c echo.Context) error {
	return h.transition(c, services.ActionApprove, models.RoleTeacher)
}

// POST /teacher/leave-requests/:id/reject
func (h *LeaveHandler) TeacherReject(c echo.Context) error {
	return h.transition(c, services.ActionReject, models.RoleTeacher)
}

// POST /admin/leave-requests/:id/approve
func (h *LeaveHandler) AdminApprove(c echo.Context) error {
	return h.transition(c, services.ActionApprove, models.RoleAdmin)
}

// POST /admin/leave-requests/:id/reject
func (h *LeaveHandler) AdminReject(c echo.Context) error {
	return h.transition(c, services.ActionReject, models.RoleAdmin)
}

func (h *LeaveHandler) transition(c echo.Context, action, approverRole string) error {
	leave, err := h.Service.Transition(c.Param("id"), action, approverRole)
	if err != nil {
		return httpError("Leave Request Error", err)
	}

	verb := "approved"
	if action == services.ActionReject {
		verb = "rejected"
	}
	resp := notice("Status Updated", fmt.Sprintf("Leave request %s.", verb))
	resp["leave"] = leave
	return c.JSON(http.StatusOK, resp)
}
