package initchecker

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// CheckInit проверяет пары "название, зависимость" и перечисляет все неинициализированные.
// Типизированный nil (например nil указатель в интерфейсе) тоже считается неинициализированным.
func CheckInit(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return errors.New("CheckInit: odd number of arguments")
	}
	missing := []string{}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return errors.Errorf("CheckInit: argument %d must be string", i)
		}
		if isNil(pairs[i+1]) {
			missing = append(missing, name)
		}
	}
	if len(missing) != 0 {
		return errors.Errorf("не инициализированы зависимости: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MustInit паникует, если какая-то зависимость не инициализирована
func MustInit(pairs ...any) {
	if err := CheckInit(pairs...); err != nil {
		panic(err.Error())
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
