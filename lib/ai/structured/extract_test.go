package structured

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

func TestExtract(t *testing.T) {
	t.Run(`pure array check`, func(t *testing.T) {
		got, err := Extract[[]item](`[{"id":1,"question":"a"},{"id":2,"question":"b"}]`, ShapeArray)
		require.Nil(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "b", got[1].Question)
	})

	t.Run(`array wrapped in prose and code fence check`, func(t *testing.T) {
		raw := "Sure! Here are the questions:\n```json\n[{\"id\":1,\"question\":\"Why Go?\"}]\n```\nGood luck."
		got, err := Extract[[]item](raw, ShapeArray)
		require.Nil(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Why Go?", got[0].Question)
	})

	t.Run(`bracket noise before the real array check`, func(t *testing.T) {
		raw := "Questions [see below] follow: [{\"id\":7,\"question\":\"x\"}] and [trailing]"
		got, err := Extract[[]item](raw, ShapeArray)
		require.Nil(t, err)
		require.Len(t, got, 1)
		require.Equal(t, 7, got[0].ID)
	})

	t.Run(`reasoning preamble is skipped check`, func(t *testing.T) {
		raw := "<think>maybe [1,2] or {\"a\":1}</think>{\"overallScore\":70}"
		got, err := Extract[map[string]int](raw, ShapeObject)
		require.Nil(t, err)
		require.Equal(t, 70, got["overallScore"])
	})

	t.Run(`no json at all check`, func(t *testing.T) {
		_, err := Extract[[]item]("I cannot help with that.", ShapeArray)
		require.True(t, errors.Is(err, ErrNoJSON))
	})

	t.Run(`malformed json check`, func(t *testing.T) {
		_, err := Extract[map[string]any](`{"overallScore": 80, "categories": [}`, ShapeObject)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		require.Equal(t, ShapeObject, parseErr.Shape)
	})

	t.Run(`wrong shape content check`, func(t *testing.T) {
		_, err := Extract[[]item](`[1, 2, 3]`, ShapeArray)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
	})
}

func FuzzExtractStructured(f *testing.F) {
	f.Add(`[{"id":1,"question":"q"}]`)
	f.Add("```json\n{\"overallScore\": 84}\n```")
	f.Add(`[[[[`)
	f.Add(`}{][`)
	f.Add("<think>[</think>]")
	f.Fuzz(func(t *testing.T, raw string) {
		for _, shape := range []Shape{ShapeArray, ShapeObject} {
			candidate, err := Locate(raw, shape)
			if err != nil {
				continue
			}
			open, close := shape.brackets()
			require.Equal(t, open, candidate[0])
			require.Equal(t, close, candidate[len(candidate)-1])
			_, _ = Extract[json.RawMessage](raw, shape)
		}
	})
}
