package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/directory"
)

type directoryApi struct {
	svc *directory.Service
}

func registerDirectoryAPI(g *echo.Group, svc *directory.Service) {
	api := directoryApi{svc: svc}

	g.POST("/verifyID", api.verifyID)
	g.POST("/students", api.createStudent)
	g.POST("/advisers", api.createAdviser)
	g.GET("/students/:studentNumber", api.retrieveStudent)
}

type verifyIDRequest struct {
	ID string `json:"id" validate:"required"`
}

// verifyID answers "who does this ID belong to". It is a directory lookup,
// not a login: no credential is checked and no session is created.
func (api *directoryApi) verifyID(ctx echo.Context) error {
	var data verifyIDRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to verifyIDRequest")
	}

	identity, err := api.svc.VerifyID(ctx.Request().Context(), data.ID)
	if err != nil {
		if errors.Cause(err) == directory.ErrUnknownID {
			return echo.NewHTTPError(http.StatusNotFound, directory.ErrUnknownID.Error())
		}
		return errors.Wrap(err, "verifying ID")
	}
	return ctx.JSON(http.StatusOK, identity)
}

func (api *directoryApi) createStudent(ctx echo.Context) error {
	var data directory.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	s, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *directoryApi) createAdviser(ctx echo.Context) error {
	var data directory.NewAdviser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdviser")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.CreateAdviser(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating adviser")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *directoryApi) retrieveStudent(ctx echo.Context) error {
	s, err := api.svc.GetStudent(ctx.Request().Context(), ctx.Param("studentNumber"))
	if err != nil {
		if errors.Cause(err) == directory.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "fetching student")
	}
	return ctx.JSON(http.StatusOK, s)
}
