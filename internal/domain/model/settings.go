// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

const bridgeTimeoutTag = "bridge_timeout"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(bridgeTimeoutTag, func(fl validator.FieldLevel) bool {
		return fl.Field().Float() >= constants.MinTimeoutSeconds
	})
	return v
}

// Settings are the Zoom Rooms plugin settings
type Settings struct {
	// Debug logs calendar operations instead of calling the bridge
	Debug bool `json:"debug" yaml:"debug"`
	// ServiceURL is the base URL of the calendar bridge
	ServiceURL string `json:"service_url" yaml:"service_url" validate:"required,url"`
	// DocsURL is an informational link shown to operators
	DocsURL string `json:"docs_url" yaml:"docs_url" validate:"omitempty,url"`
	// Token is the bearer credential for the bridge
	Token string `json:"-" yaml:"token" validate:"required"`
	// Timeout is the request timeout in seconds
	Timeout float64 `json:"timeout" yaml:"timeout" validate:"bridge_timeout"`
}

// DefaultSettings returns Settings with the default timeout
func DefaultSettings() Settings {
	return Settings{Timeout: 3}
}

// RequestTimeout converts Timeout to a duration
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.Timeout * float64(time.Second))
}

// Validate reports missing or malformed settings as a configuration error.
// In debug mode the bridge is never called, so service_url and token are not checked.
func (s Settings) Validate() error {
	var err error
	if s.Debug {
		err = validate.StructExcept(s, "ServiceURL", "Token")
	} else {
		err = validate.Struct(s)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewConfiguration("invalid zoom rooms settings", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is not set", settingName(fe.Field())))
		case bridgeTimeoutTag:
			problems = append(problems, fmt.Sprintf("timeout must be at least %g seconds", constants.MinTimeoutSeconds))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid (%s)", settingName(fe.Field()), fe.Tag()))
		}
	}
	return errors.NewConfiguration("zoom rooms settings: "+strings.Join(problems, ", "), err)
}

func settingName(field string) string {
	switch field {
	case "ServiceURL":
		return "service_url"
	case "DocsURL":
		return "docs_url"
	case "Token":
		return "token"
	case "Timeout":
		return "timeout"
	}
	return field
}
