package scanner

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/meta"
)

// describerMethod is the meta.Describer method, never part of a generated interface.
const describerMethod = "MethodParams"

// ScanMethods reflects over the exported method set of v and returns one
// descriptor per method, in reflect's enumeration order (sorted by name).
// Parameter lists come from v's meta.Describer table when v implements it.
func ScanMethods(v any) ([]meta.Method, error) {
	if v == nil {
		return nil, errors.New("scan methods of nil value")
	}
	val := reflect.ValueOf(v)
	typ := val.Type()

	var params map[string][]meta.Param
	if d, ok := v.(meta.Describer); ok {
		params = d.MethodParams()
	}

	methods := make([]meta.Method, 0, typ.NumMethod())
	for i := 0; i < typ.NumMethod(); i++ {
		name := typ.Method(i).Name
		if name == describerMethod {
			continue
		}
		methods = append(methods, meta.Method{
			Name:   name,
			Arity:  val.Method(i).Type().NumIn(),
			Params: params[name],
		})
	}

	for name := range params {
		if _, ok := typ.MethodByName(name); !ok {
			return nil, errors.Newf("%s declares parameters for unknown method %q", typ, name)
		}
	}
	return methods, nil
}
