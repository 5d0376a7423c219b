package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/XiaoConstantine/pareto-go/pkg/errors"
)

var validate = validator.New()

// Validate runs structural validation over the config, then the domain
// cross-checks that struct tags cannot express: every objective needs a
// recognized direction and a reference value. These are hard failures; a
// misconfigured run must not be silently defaulted.
func (c RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			first := fieldErrors[0]
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "invalid run configuration"),
				errors.Fields{"field": first.Field(), "constraint": first.Tag()})
		}
		return errors.Wrap(err, errors.ValidationFailed, "invalid run configuration")
	}

	spec := c.ObjectiveSpec()
	if err := spec.Validate(); err != nil {
		return err
	}
	return c.Reference().Validate(c.Objectives)
}
