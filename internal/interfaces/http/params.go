package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/domain"
)

// pathID lee un parámetro de ruta entero positivo.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo (%q)", domain.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// actorFrom construye el actor desde ?empId= y la ruta invocada. Un empId ausente queda en 0
// y el caso de uso lo rechaza. La ruta se copia: fiber reutiliza sus buffers entre peticiones.
func actorFrom(c *fiber.Ctx) inventory.Actor {
	id, _ := strconv.ParseInt(c.Query("empId"), 10, 64)
	return inventory.Actor{ID: id, Endpoint: strings.Clone(c.Path())}
}
