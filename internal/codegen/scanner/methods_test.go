package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/meta"
	"github.com/Fabric-Examples/composer-sdk-java-example/internal/engine"
)

type sample struct{}

func (sample) Foo(a, b string) string { return a + b }
func (sample) Bar(ctx context.Context, a, b, c string) error { return nil }
func (sample) Baz() {}
func (sample) MethodParams() map[string][]meta.Param {
	return map[string][]meta.Param{
		"Foo": {{Name: "a", Type: meta.ParamString}, {Name: "b", Type: meta.ParamString}},
	}
}

type plain struct{}

func (*plain) Run(int) {}

type lying struct{}

func (lying) Real() {}
func (lying) MethodParams() map[string][]meta.Param {
	return map[string][]meta.Param{"Ghost": nil}
}

func TestScanMethods(t *testing.T) {
	methods, err := ScanMethods(sample{})
	require.NoError(t, err)
	require.Len(t, methods, 3)

	assert.Equal(t, meta.Method{Name: "Bar", Arity: 4}, methods[0])
	assert.Equal(t, meta.Method{Name: "Baz", Arity: 0}, methods[1])
	assert.Equal(t, "Foo", methods[2].Name)
	assert.Equal(t, 2, methods[2].Arity)
	assert.Len(t, methods[2].Params, 2)
}

func TestScanMethodsPointerReceiver(t *testing.T) {
	methods, err := ScanMethods(&plain{})
	require.NoError(t, err)
	assert.Equal(t, []meta.Method{{Name: "Run", Arity: 1}}, methods)

	// Value receivers do not see pointer methods.
	methods, err = ScanMethods(plain{})
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestScanMethodsErrors(t *testing.T) {
	_, err := ScanMethods(nil)
	assert.Error(t, err)

	_, err = ScanMethods(lying{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Ghost"`)
}

func TestScanEngine(t *testing.T) {
	methods, err := ScanMethods(engine.New(nil))
	require.NoError(t, err)

	arity := map[string]int{}
	for _, m := range methods {
		arity[m.Name] = m.Arity
	}
	assert.Equal(t, map[string]int{
		"ExecuteQuery":              2,
		"GetAllResourcesInRegistry": 2,
		"GetResourceInRegistry":     2,
		"Init":                      4,
		"Invoke":                    4,
		"Ping":                      2,
		"SubmitTransaction":         2,
	}, arity)
}
