package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/advising"
	"github.com/acadtrack/advising/core/directory"
)

type advisingApi struct {
	svc *advising.Service
}

func registerAdvisingAPI(g *echo.Group, svc *advising.Service) {
	api := advisingApi{svc: svc}

	g.GET("/adviser/:adviserId", api.programData)
	g.POST("/approveStudentCourseList", api.approve)
}

func (api *advisingApi) programData(ctx echo.Context) error {
	data, err := api.svc.ProgramData(ctx.Request().Context(), ctx.Param("adviserId"))
	if err != nil {
		if errors.Cause(err) == directory.ErrAdviserNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building program data")
	}
	return ctx.JSON(http.StatusOK, data)
}

type approveRequest struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
}

func (r *approveRequest) Validate() error {
	r.StudentNumber = core.CleanString(r.StudentNumber)
	return core.Validate.Struct(r)
}

type approveResponse struct {
	SuccessResponse
	CoursesApproved int64 `json:"coursesApproved"`
}

// approve flips the student's pending submissions to taken. Approving a
// student with nothing pending succeeds and reports zero courses, so a
// double-click or retry changes nothing.
func (api *advisingApi) approve(ctx echo.Context) error {
	var data approveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to approveRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	n, err := api.svc.Approve(ctx.Request().Context(), data.StudentNumber)
	if err != nil {
		return mapLedgerErr(err, "approving course list")
	}
	return ctx.JSON(http.StatusOK, approveResponse{
		SuccessResponse: SuccessResponse{Success: fmt.Sprintf("%d course(s) approved", n)},
		CoursesApproved: n,
	})
}
