package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/course"
)

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{svc: svc}

	g.POST("/courses", api.create)
	g.POST("/addCourse", api.createWithChecklist)
	// echo v4.1.17 keeps only the first-registered param name per route
	// node, so every method on /courses/:x must share one name; GET reads
	// it as a program, PUT/DELETE as a course ID.
	g.GET("/courses/:courseKey", api.queryByProgram)
	g.PUT("/courses/:courseKey", api.update)
	g.DELETE("/courses/:courseKey", api.destroy)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return mapCourseErr(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

// addCourseRequest is the combined "add course" payload: the course itself
// plus its placement on a program checklist, written atomically.
type addCourseRequest struct {
	course.NewCourse
	course.ChecklistPlacement
}

func (api *courseApi) createWithChecklist(ctx echo.Context) error {
	var data addCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addCourseRequest")
	}
	if err := data.NewCourse.Validate(); err != nil {
		return err
	}
	if err := data.ChecklistPlacement.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.CreateWithChecklist(ctx.Request().Context(), data.NewCourse, data.ChecklistPlacement)
	if err != nil {
		return mapCourseErr(err, "adding course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) queryByProgram(ctx echo.Context) error {
	courses, err := api.svc.QueryByProgram(ctx.Request().Context(), ctx.Param("courseKey"))
	if err != nil {
		return mapCourseErr(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) update(ctx echo.Context) error {
	id := ctx.Param("courseKey")
	program := ctx.QueryParam("program")

	orig, err := api.svc.Get(ctx.Request().Context(), id, program)
	if err != nil {
		return mapCourseErr(err, "fetching course")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(id, orig); err != nil {
		return err
	}

	if err := api.svc.Update(ctx.Request().Context(), id, data, program); err != nil {
		return mapCourseErr(err, "updating course")
	}

	crs, err := api.svc.Get(ctx.Request().Context(), data.NewID, program)
	if err != nil {
		return mapCourseErr(err, "fetching course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("courseKey")); err != nil {
		return mapCourseErr(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func mapCourseErr(err error, msg string) error {
	switch errors.Cause(err) {
	case course.ErrNotFound:
		return errHttpNotFound
	case course.ErrCourseExists:
		return echo.NewHTTPError(http.StatusConflict, course.ErrCourseExists.Error())
	case course.ErrRequisiteCycle:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, course.ErrRequisiteCycle.Error())
	default:
		return errors.Wrap(err, msg)
	}
}
