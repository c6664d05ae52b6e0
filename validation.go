package main

import (
	"sync"

	"fc-manager-backend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator the closed enumerations used in
// binding tags. Accented values are accepted in either Unicode normal form.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		rules := map[string]func(string) bool{
			"player_status": func(s string) bool { return model.PlayerStatus(s).Valid() },
			"player_origin": func(s string) bool { return model.PlayerOrigin(s).Valid() },
			"transfer_type": func(s string) bool { return model.TransferType(s).Valid() },
			"project_type":  func(s string) bool { return model.ProjectType(s).Valid() },
		}
		for tag, valid := range rules {
			valid := valid
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return valid(fl.Field().String())
			})
		}
	})
}

// canonicalPlayer rewrites enum fields to their canonical spelling after binding.
func canonicalPlayer(status *model.PlayerStatus, origin *model.PlayerOrigin) {
	if status != nil {
		if s, err := model.ParsePlayerStatus(string(*status)); err == nil {
			*status = s
		}
	}
	if origin != nil {
		if o, err := model.ParsePlayerOrigin(string(*origin)); err == nil {
			*origin = o
		}
	}
}
