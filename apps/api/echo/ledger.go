package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/core/ledger"
)

type ledgerApi struct {
	svc *ledger.Service
}

func registerLedgerAPI(g *echo.Group, svc *ledger.Service) {
	api := ledgerApi{svc: svc}

	g.GET("/dashboard/:studentNumber", api.dashboard)
	g.GET("/getCoursesForStudent/:studentNumber", api.coursesForStudent)
	g.GET("/courseList", api.query)
	g.POST("/updateCourseList", api.updateCourseList)
}

func (api *ledgerApi) dashboard(ctx echo.Context) error {
	dash, err := api.svc.Dashboard(ctx.Request().Context(), ctx.Param("studentNumber"))
	if err != nil {
		return mapLedgerErr(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *ledgerApi) coursesForStudent(ctx echo.Context) error {
	sel, err := api.svc.CoursesForStudent(ctx.Request().Context(), ctx.Param("studentNumber"))
	if err != nil {
		return mapLedgerErr(err, "building course selection")
	}
	return ctx.JSON(http.StatusOK, sel)
}

func (api *ledgerApi) query(ctx echo.Context) error {
	entries, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("studentNumber"), ctx.QueryParam("courseId"))
	if err != nil {
		return errors.Wrap(err, "querying course list")
	}
	return ctx.JSON(http.StatusOK, entries)
}

type updateCourseListResponse struct {
	SuccessResponse
	Applied bool `json:"applied"`
}

// updateCourseList applies an atomic batch of course list changes. A replay
// of an already-applied batch is reported as a success that applied nothing.
func (api *ledgerApi) updateCourseList(ctx echo.Context) error {
	var data ledger.BatchUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BatchUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	applied, err := api.svc.SaveCourseList(ctx.Request().Context(), data)
	if err != nil {
		return mapLedgerErr(err, "updating course list")
	}

	msg := "course list updated"
	if !applied {
		msg = "course list update already applied"
	}
	return ctx.JSON(http.StatusOK, updateCourseListResponse{
		SuccessResponse: SuccessResponse{Success: msg},
		Applied:         applied,
	})
}

func mapLedgerErr(err error, msg string) error {
	switch errors.Cause(err) {
	case directory.ErrStudentNotFound, directory.ErrAdviserNotFound, ledger.ErrEntryNotFound:
		return errHttpNotFound
	case ledger.ErrEntryExists, ledger.ErrAlreadyTaken:
		return echo.NewHTTPError(http.StatusConflict, errors.Cause(err).Error())
	case ledger.ErrNothingToApply:
		return echo.NewHTTPError(http.StatusBadRequest, ledger.ErrNothingToApply.Error())
	default:
		return errors.Wrap(err, msg)
	}
}
