package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/graphql-go/graphql"
	ghandler "github.com/graphql-go/handler"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// NewGraphQLHandler wraps graphql-go's net/http handler for Fiber.
func NewGraphQLHandler(schema graphql.Schema) fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(ghandler.New(&ghandler.Config{
		Schema: &schema,
		Pretty: true,
	}))
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}
