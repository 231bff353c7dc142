package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type dep interface{ Name() string }

type depImpl struct{}

func (*depImpl) Name() string { return "dep" }

func TestCheckInit(t *testing.T) {
	t.Run(`all dependencies set check`, func(t *testing.T) {
		var d dep = &depImpl{}
		require.NoError(t, CheckInit("dep", d, "value", 1))
	})
	t.Run(`nil and typed nil check`, func(t *testing.T) {
		var typedNil *depImpl
		var d dep = typedNil
		err := CheckInit("first", nil, "second", d, "third", &depImpl{})
		require.EqualError(t, err, "не инициализированы зависимости: first, second")
	})
	t.Run(`odd argument count check`, func(t *testing.T) {
		require.Error(t, CheckInit("only name"))
		require.Panics(t, func() { MustInit("dep", nil) })
	})
}
