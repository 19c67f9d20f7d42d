package eval

import (
	"fmt"

	reflect "github.com/goccy/go-reflect"
)

// Function is anything callable from yaipl source.
type Function interface {
	Name() string
	Call(args []any) (any, error)
}

var errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()

type reflectFunc struct {
	name  string
	value reflect.Value
	arity int
}

// NewFunction wraps a plain Go function as a builtin. The function must not
// be variadic and must return (T, error); arguments are bridged by
// reflection at call time.
func NewFunction(name string, f any) (Function, error) {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("must be function but got %T: %+v", f, f)
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%s: variadic functions are not supported", name)
	}
	if t.NumOut() != 2 || !t.Out(1).Implements(errorInterfaceType) {
		return nil, fmt.Errorf("%s: function must return (T, error)", name)
	}

	return &reflectFunc{name: name, value: v, arity: t.NumIn()}, nil
}

func MustNewFunction(name string, f any) Function {
	fn, err := NewFunction(name, f)
	if err != nil {
		panic(err)
	}
	return fn
}

func (f *reflectFunc) Name() string {
	return f.name
}

func (f *reflectFunc) Call(args []any) (any, error) {
	if len(args) != f.arity {
		return nil, &TypeMismatch{
			Message:  fmt.Sprintf("%s takes %d arguments, got %d", f.name, f.arity, len(args)),
			Operator: f.name,
		}
	}

	t := f.value.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(t.In(i))
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(t.In(i)) {
			return nil, &TypeMismatch{
				Message:  fmt.Sprintf("%s: argument %d must be %s, got %T", f.name, i+1, t.In(i), arg),
				Operator: f.name,
				Value:    arg,
			}
		}
		in[i] = v
	}

	out := f.value.Call(in)
	if err := out[1].Interface(); err != nil {
		return nil, err.(error)
	}
	return out[0].Interface(), nil
}
