package handler

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"partyplanner/internal/model"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by the request
// models. It must run before the first request is bound.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("venuetype", validVenueType)
	})
}

// validVenueType accepts indoor, outdoor or hybrid in any case
func validVenueType(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case model.VenueTypeIndoor, model.VenueTypeOutdoor, model.VenueTypeHybrid:
		return true
	}
	return false
}
