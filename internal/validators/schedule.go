package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsSlug(s string) bool {
	return len(s) <= 100 && slugPattern.MatchString(s)
}

func IsClock(s string) bool {
	_, err := timezone.ParseClock(s)
	return err == nil
}

// ClockRangeValid reports whether start and end are clock times with
// start strictly before end.
func ClockRangeValid(start, end string) bool {
	s, err := timezone.ParseClock(start)
	if err != nil {
		return false
	}
	e, err := timezone.ParseClock(end)
	if err != nil {
		return false
	}
	return s < e
}

// Register installs the custom binding tags used by request schemas
// ("slug", "hhmm") and rejects unknown JSON fields.
func Register() error {
	binding.EnableDecoderDisallowUnknownFields = true

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(NormalizeSlug(fl.Field().String()))
	}); err != nil {
		return err
	}

	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
}
