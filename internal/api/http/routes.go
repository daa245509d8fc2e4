package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/akosarev/weather-forecast/internal/cities"
	"github.com/akosarev/weather-forecast/internal/forecast"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *forecast.Service, list *cities.List) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		place, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data := svc.GetData(c.UserContext(), place)
		if data == nil {
			return fiber.NewError(fiber.StatusNotFound, "no forecast available for requested place")
		}

		return c.JSON(data)
	})

	// The raw read path: returns whatever is cached regardless of freshness,
	// so clients can paint immediately while refetching through /forecast.
	v1.Get("/forecast/cached", func(c *fiber.Ctx) error {
		place, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data := svc.GetCachedData(place)
		if data == nil {
			return fiber.NewError(fiber.StatusNotFound, "place has never been cached")
		}

		return c.JSON(data)
	})

	v1.Delete("/forecast/cache", func(c *fiber.Ctx) error {
		place, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		svc.DeleteCachedData(place)
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities":   list.All(),
			"selected": list.Selected(),
		})
	})

	v1.Post("/cities", func(c *fiber.Ctx) error {
		var req addCityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		name, err := list.Add(c.UserContext(), req.City)
		switch {
		case errors.Is(err, cities.ErrUnknownCity):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, cities.ErrAlreadyTracked):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add city")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"city": name})
	})

	v1.Delete("/cities/:index", func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "index must be an integer")
		}

		if err := list.Remove(index); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Put("/cities/selected", func(c *fiber.Ctx) error {
		var req selectCityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := list.Select(*req.Index); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// addCityRequest is the body of POST /cities.
type addCityRequest struct {
	City string `json:"city" validate:"required"`
}

// selectCityRequest is the body of PUT /cities/selected. Index is a pointer
// so a zero index survives the required check.
type selectCityRequest struct {
	Index *int `json:"index" validate:"required"`
}

func parsePlaceQuery(c *fiber.Ctx) (string, error) {
	q := struct {
		Place string `validate:"required"`
	}{Place: c.Query("place")}

	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.Place, nil
}
