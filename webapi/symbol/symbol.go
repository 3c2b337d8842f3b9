package symbol

import (
	"github.com/amirasaad/moneyrates/pkg/domain"
	symbolsvc "github.com/amirasaad/moneyrates/pkg/service/symbol"
	"github.com/amirasaad/moneyrates/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(r fiber.Router, svc *symbolsvc.Service) {
	r.Get("/api/symbols", ListSymbols(svc))
}

// ListSymbols returns the cached currency symbols.
// @Summary List currency symbols
// @Description Without q the full table is returned, fetching it first when the cache is empty.
// @Description With q only symbols whose description contains q are returned.
// @Tags symbols
// @Produce json
// @Param q query string false "Description substring (case-sensitive)"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/symbols [get]
func ListSymbols(svc *symbolsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			symbols []domain.Symbol
			err     error
		)
		if q, ok := c.Queries()["q"]; ok {
			symbols, err = svc.FilterSymbols(c.Context(), &q)
		} else {
			symbols, err = svc.GetSymbols(c.Context())
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list symbols", err)
		}
		if symbols == nil {
			symbols = []domain.Symbol{}
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Symbols fetched successfully", symbols)
	}
}
