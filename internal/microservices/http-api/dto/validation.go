package dto

import (
	"reflect"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// now is swapped in tests.
var now = time.Now

// RegisterValidators installs the custom binding rules on gin's validator.
// It must run before any request is bound; repeated calls are no-ops.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("dto: gin validator is not go-playground/validator")
		}
		if err := v.RegisterValidation("notfuture", notFuture); err != nil {
			panic(err)
		}
	})
}

// notFuture accepts years, YYYY-MM-DD strings and times that are not after
// the current date. Unparseable strings are left to the datetime rule.
func notFuture(fl validator.FieldLevel) bool {
	today := now()
	field := fl.Field()

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() <= int64(today.Year())
	case reflect.String:
		d, err := time.Parse(DateLayout, field.String())
		if err != nil {
			return true
		}
		return !d.After(endOfDay(today))
	}
	if t, ok := field.Interface().(time.Time); ok {
		return !t.After(today)
	}
	return false
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
