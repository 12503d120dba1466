package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/checklist"
)

type checklistApi struct {
	svc *checklist.Service
}

func registerChecklistAPI(g *echo.Group, svc *checklist.Service) {
	api := checklistApi{svc: svc}

	cg := g.Group("/checklist")
	cg.POST("", api.create)
	cg.GET("", api.queryAll)
	cg.GET("/:program", api.queryByProgram)
	cg.PUT("/:program/:courseId", api.update)
	cg.DELETE("/:program/:courseId", api.destroy)
}

func (api *checklistApi) create(ctx echo.Context) error {
	var data checklist.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	itm, err := api.svc.AddItem(ctx.Request().Context(), data)
	if err != nil {
		return mapChecklistErr(err, "adding checklist entry")
	}
	return ctx.JSON(http.StatusCreated, itm)
}

func (api *checklistApi) queryAll(ctx echo.Context) error {
	items, err := api.svc.Query(ctx.Request().Context(), "")
	if err != nil {
		return errors.Wrap(err, "querying checklist")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *checklistApi) queryByProgram(ctx echo.Context) error {
	program := ctx.Param("program")
	items, err := api.svc.Query(ctx.Request().Context(), program)
	if err != nil {
		return errors.Wrap(err, "querying checklist")
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, checklist.ErrProgramNotFound.Error())
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *checklistApi) update(ctx echo.Context) error {
	program := ctx.Param("program")
	courseID := ctx.Param("courseId")

	orig, err := api.svc.GetItem(ctx.Request().Context(), program, courseID)
	if err != nil {
		return mapChecklistErr(err, "fetching checklist entry")
	}

	var data checklist.UpdateItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateItem")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	if err := api.svc.UpdateItem(ctx.Request().Context(), program, courseID, data); err != nil {
		return mapChecklistErr(err, "updating checklist entry")
	}

	itm, err := api.svc.GetItem(ctx.Request().Context(), data.NewProgram, data.NewCourseID)
	if err != nil {
		return mapChecklistErr(err, "fetching checklist entry")
	}
	return ctx.JSON(http.StatusOK, itm)
}

func (api *checklistApi) destroy(ctx echo.Context) error {
	if err := api.svc.RemoveItem(ctx.Request().Context(), ctx.Param("program"), ctx.Param("courseId")); err != nil {
		return mapChecklistErr(err, "deleting checklist entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func mapChecklistErr(err error, msg string) error {
	switch errors.Cause(err) {
	case checklist.ErrNotFound:
		return errHttpNotFound
	case checklist.ErrCourseNotFound:
		return echo.NewHTTPError(http.StatusBadRequest, checklist.ErrCourseNotFound.Error())
	default:
		return errors.Wrap(err, msg)
	}
}
