package session

import (
	"errors"

	"github.com/amirasaad/moneyrates/pkg/app"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var errNoPicker = errors.New("no picker is open for this session")

func Routes(r fiber.Router, a *app.App) {
	g := r.Group("/api/sessions")
	g.Post("/", OpenSession(a))
	g.Get("/:id", GetSession(a))
	g.Delete("/:id", CloseSession(a))
	g.Post("/:id/input", Input(a))
	g.Post("/:id/pick", Pick(a))
	g.Get("/:id/picker", GetPicker(a))
	g.Post("/:id/picker/search", Search(a))
	g.Post("/:id/picker/cancel", CancelSearch(a))
	g.Post("/:id/picker/select", Select(a))
}

func lookup(c *fiber.Ctx, a *app.App) (*app.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Invalid session ID", err, "Session ID must be a valid UUID", fiber.StatusBadRequest)
	}
	s, err := a.Session(id)
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Session not found", err)
	}
	return s, nil
}

// OpenSession starts a conversion form and begins loading symbols.
// @Summary Open a conversion session
// @Tags sessions
// @Produce json
// @Success 201 {object} common.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /api/sessions [post]
func OpenSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := a.OpenSession()
		if err != nil {
			log.Errorf("Failed to open session: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't open session", err, fiber.StatusServiceUnavailable)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Session opened", s.State())
	}
}

// GetSession returns the current form state.
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id} [get]
func GetSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Session state", s.State())
	}
}

// CloseSession stops a session.
// @Summary Close a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id} [delete]
func CloseSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		if err := a.CloseSession(s.ID); err != nil {
			return common.ProblemDetailsJSON(c, "Session not found", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Input applies text typed into a field. The conversion runs after the
// debounce delay; poll the session to see its result.
// @Summary Type into a field
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body InputRequest true "Field and text"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/input [post]
func Input(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		input, err := common.BindAndValidate[InputRequest](c)
		if input == nil {
			return err
		}
		field, _ := domain.ParseField(input.Field)
		s.Converter.InputChanged(field, input.Text)
		s.Converter.Flush()
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Input accepted", s.State())
	}
}

// Pick opens the currency picker for a field.
// @Summary Open the picker
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PickRequest true "Field"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/pick [post]
func Pick(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		input, err := common.BindAndValidate[PickRequest](c)
		if input == nil {
			return err
		}
		field, _ := domain.ParseField(input.Field)
		s.PickRequested(field)
		s.Converter.Flush()
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Picker opened", s.State())
	}
}

// GetPicker returns the open picker's list.
// @Summary Get picker state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/picker [get]
func GetPicker(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		p := s.Picker()
		if p == nil {
			return common.ProblemDetailsJSON(c, "Picker not open", errNoPicker, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Picker state", app.PickerStateOf(p))
	}
}

// Search filters the picker list by description.
// @Summary Search the picker
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SearchRequest true "Search text"
// @Success 202 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/picker/search [post]
func Search(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		input, err := common.BindAndValidate[SearchRequest](c)
		if input == nil {
			return err
		}
		p := s.Picker()
		if p == nil {
			return common.ProblemDetailsJSON(c, "Picker not open", errNoPicker, fiber.StatusNotFound)
		}
		p.Search(input.Text)
		p.Flush()
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Search started", app.PickerStateOf(p))
	}
}

// CancelSearch restores the full picker list.
// @Summary Cancel the picker search
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/picker/cancel [post]
func CancelSearch(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		p := s.Picker()
		if p == nil {
			return common.ProblemDetailsJSON(c, "Picker not open", errNoPicker, fiber.StatusNotFound)
		}
		p.CancelSearch()
		p.Flush()
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Search cancelled", app.PickerStateOf(p))
	}
}

// Select chooses a row of the picker list for its field.
// @Summary Select a currency
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SelectRequest true "Row index"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/picker/select [post]
func Select(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := lookup(c, a)
		if s == nil {
			return err
		}
		input, err := common.BindAndValidate[SelectRequest](c)
		if input == nil {
			return err
		}
		p := s.Picker()
		if p == nil {
			return common.ProblemDetailsJSON(c, "Picker not open", errNoPicker, fiber.StatusNotFound)
		}
		p.Select(*input.Index)
		p.Flush()
		s.Converter.Flush()
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Selection accepted", s.State())
	}
}
