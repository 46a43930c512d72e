package v1

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/deikotec/socialflow/internal/domain/content"
)

var validatorsOnce sync.Once

// registerValidators adds the custom binding tags used by v1 payloads.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("contentstatus", func(fl validator.FieldLevel) bool {
			return content.Status(fl.Field().String()).Valid()
		})
	})
}
