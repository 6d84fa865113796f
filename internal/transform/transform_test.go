package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/pyjson/internal/config"
	"github.com/mcncl/pyjson/internal/value"
)

func TestApply_DefaultsLeaveTreeUntouched(t *testing.T) {
	obj := value.Object{
		{Key: "user_name", Value: value.String("x")},
		{Key: "b", Value: value.Number(1)},
	}

	out := NewTransformer(nil).Apply(obj)
	assert.Equal(t, value.Value(obj), out)
}

func TestApply_SortKeys(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SortKeys = true

	obj := value.Object{
		{Key: "z", Value: value.Number(1)},
		{Key: "a", Value: value.Object{
			{Key: "y", Value: value.Number(2)},
			{Key: "b", Value: value.Number(3)},
		}},
	}

	out := NewTransformer(cfg).Apply(obj)

	sorted, ok := out.(value.Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "z"}, sorted.Keys())

	nested, _ := sorted.Get("a")
	nestedObj, ok := nested.(value.Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "y"}, nestedObj.Keys())
}

func TestApply_KeyStyles(t *testing.T) {
	tests := []struct {
		style    string
		expected []string
	}{
		{config.KeyStyleCamel, []string{"userName", "createdAt"}},
		{config.KeyStyleSnake, []string{"user_name", "created_at"}},
		{config.KeyStylePascal, []string{"UserName", "CreatedAt"}},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Naming.KeyStyle = tt.style

			obj := value.Object{
				{Key: "user_name", Value: value.String("x")},
				{Key: "createdAt", Value: value.String("y")},
			}

			out := NewTransformer(cfg).Apply(obj)
			renamed, ok := out.(value.Object)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, renamed.Keys())
		})
	}
}

func TestApply_KeyMappingsWinOverStyle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Naming.KeyStyle = config.KeyStyleCamel
	cfg.Naming.KeyMappings = map[string]string{"user_name": "login"}

	obj := value.Object{
		{Key: "user_name", Value: value.String("x")},
		{Key: "last_seen", Value: value.String("y")},
	}

	out := NewTransformer(cfg).Apply(obj)
	renamed, ok := out.(value.Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"login", "lastSeen"}, renamed.Keys())
}

func TestApply_RenameCollisionKeepsLastValue(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Naming.KeyStyle = config.KeyStyleSnake

	obj := value.Object{
		{Key: "userName", Value: value.Number(1)},
		{Key: "user_name", Value: value.Number(2)},
	}

	out := NewTransformer(cfg).Apply(obj)
	renamed, ok := out.(value.Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"user_name"}, renamed.Keys())

	v, _ := renamed.Get("user_name")
	assert.Equal(t, value.Number(2), v)
}

func TestApply_RecursesThroughArrays(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Naming.KeyStyle = config.KeyStyleCamel

	arr := value.Array{
		value.Object{{Key: "item_id", Value: value.Number(1)}},
		value.Number(2),
	}

	out := NewTransformer(cfg).Apply(arr)
	outArr, ok := out.(value.Array)
	assert.True(t, ok)

	first, ok := outArr[0].(value.Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"itemId"}, first.Keys())
	assert.Equal(t, value.Number(2), outArr[1])
}

func TestApply_ScalarsPassThrough(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SortKeys = true

	tr := NewTransformer(cfg)
	assert.Equal(t, value.Value(value.Number(1)), tr.Apply(value.Number(1)))
	assert.Equal(t, value.Value(value.Null{}), tr.Apply(value.Null{}))
	assert.Equal(t, value.Value(value.String("s")), tr.Apply(value.String("s")))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SortKeys = true

	obj := value.Object{
		{Key: "z", Value: value.Number(1)},
		{Key: "a", Value: value.Number(2)},
	}

	NewTransformer(cfg).Apply(obj)
	assert.Equal(t, []string{"z", "a"}, obj.Keys())
}
