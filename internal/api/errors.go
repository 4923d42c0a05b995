package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
)

var registerTagNames sync.Once

// useFormFieldNames makes validation errors report the wire field name
// ("recipeName") instead of the Go field name ("Name").
func useFormFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// validationMessage flattens binding errors into one readable message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return "recipe validation failed: " + strings.Join(parts, ", ")
}

func respondMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, middleware.ErrorResponse{Message: message})
}

// respondError reports err to the client and attaches it to the context for the request log
func respondError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	respondMessage(c, status, err.Error())
}
