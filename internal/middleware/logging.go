package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on both requests and responses.
const RequestIDHeader = "X-Request-ID"

// Logging middleware that logs request ID, route, status code and response time.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${requestid} | ${method} | ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"requestid": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				return output.WriteString(c.GetRespHeader(RequestIDHeader))
			},
		},
	})
}

// RequestID middleware that reuses a valid incoming request ID or generates a new one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := uuid.Parse(c.Get(RequestIDHeader))
		if err != nil {
			requestID = uuid.New()
		}

		c.Locals("requestID", requestID)
		c.Set(RequestIDHeader, requestID.String())
		return c.Next()
	}
}
