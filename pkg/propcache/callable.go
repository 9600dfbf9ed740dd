package propcache

import (
	"fmt"
	"reflect"
)

// Getter computes an attribute value for an instance. args and kwargs are the
// bound arguments configured on the property.
type Getter func(inst Instance, args []any, kwargs map[string]any) (any, error)

// Setter handles assignment to an attribute. A non-nil returned value
// replaces the assigned value in the instance cache, letting setters
// normalize or transform what gets stored.
type Setter func(inst Instance, value any, args []any, kwargs map[string]any) (any, error)

// Deleter handles removal of an attribute.
type Deleter func(inst Instance, args []any, kwargs map[string]any) error

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// invoker calls an arbitrary user function through reflection. Positional
// values are matched to parameters left to right; a trailing map[string]any
// parameter, if present, receives the property's keyword arguments. A final
// error result, if present, is split off from the value results.
type invoker struct {
	fn      reflect.Value
	typ     reflect.Type
	wantsKw bool
	numPos  int
	hasErr  bool
	numVals int
}

func newInvoker(fn any) (*invoker, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrNotCallable)
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: got %T", ErrNotCallable, fn)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic functions are not supported", ErrNotCallable)
	}

	inv := &invoker{fn: v, typ: t, numPos: t.NumIn()}

	kwType := reflect.TypeOf(map[string]any(nil))
	if t.NumIn() > 0 && t.In(t.NumIn()-1) == kwType {
		inv.wantsKw = true
		inv.numPos--
	}

	inv.numVals = t.NumOut()
	if t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType {
		inv.hasErr = true
		inv.numVals--
	}

	return inv, nil
}

// call invokes the function with the given positional values and kwargs.
func (inv *invoker) call(positional []any, kwargs map[string]any) (any, error) {
	if len(positional) != inv.numPos {
		return nil, fmt.Errorf("propcache: hook takes %d positional arguments, got %d",
			inv.numPos, len(positional))
	}

	in := make([]reflect.Value, 0, inv.typ.NumIn())
	for i, arg := range positional {
		v, err := conformArg(arg, inv.typ.In(i))
		if err != nil {
			return nil, fmt.Errorf("propcache: argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	if inv.wantsKw {
		if kwargs == nil {
			kwargs = map[string]any{}
		}
		in = append(in, reflect.ValueOf(kwargs))
	}

	out := inv.fn.Call(in)

	if inv.hasErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		out = out[:len(out)-1]
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// conformArg converts a call-time value to the parameter type. Untyped nil
// becomes the parameter's zero value.
func conformArg(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, want)
}

// AsGetter adapts an arbitrary function into a Getter. The function receives
// the instance followed by the property's bound arguments; a trailing
// map[string]any parameter receives the keyword arguments. It must return one
// value, optionally followed by an error.
//
// A Getter passes through unchanged.
func AsGetter(fn any) (Getter, error) {
	if g, ok := fn.(Getter); ok {
		return g, nil
	}
	if g, ok := fn.(func(Instance, []any, map[string]any) (any, error)); ok {
		return Getter(g), nil
	}

	inv, err := newInvoker(fn)
	if err != nil {
		return nil, err
	}
	if inv.numVals != 1 {
		return nil, fmt.Errorf("%w: getter must return one value, has %d",
			ErrNotCallable, inv.numVals)
	}

	return func(inst Instance, args []any, kwargs map[string]any) (any, error) {
		positional := append([]any{inst}, args...)
		return inv.call(positional, kwargs)
	}, nil
}

// AsSetter adapts an arbitrary function into a Setter. The function receives
// the instance and the assigned value followed by the bound arguments; a
// trailing map[string]any parameter receives the keyword arguments. It may
// return a replacement value and an error, either, or neither.
//
// A Setter passes through unchanged.
func AsSetter(fn any) (Setter, error) {
	if s, ok := fn.(Setter); ok {
		return s, nil
	}
	if s, ok := fn.(func(Instance, any, []any, map[string]any) (any, error)); ok {
		return Setter(s), nil
	}

	inv, err := newInvoker(fn)
	if err != nil {
		return nil, err
	}
	if inv.numVals > 1 {
		return nil, fmt.Errorf("%w: setter must return at most one value, has %d",
			ErrNotCallable, inv.numVals)
	}

	return func(inst Instance, value any, args []any, kwargs map[string]any) (any, error) {
		positional := append([]any{inst, value}, args...)
		return inv.call(positional, kwargs)
	}, nil
}

// AsDeleter adapts an arbitrary function into a Deleter. The function
// receives the instance followed by the bound arguments; a trailing
// map[string]any parameter receives the keyword arguments. It may return an
// error and nothing else.
//
// A Deleter passes through unchanged.
func AsDeleter(fn any) (Deleter, error) {
	if d, ok := fn.(Deleter); ok {
		return d, nil
	}
	if d, ok := fn.(func(Instance, []any, map[string]any) error); ok {
		return Deleter(d), nil
	}

	inv, err := newInvoker(fn)
	if err != nil {
		return nil, err
	}
	if inv.numVals != 0 {
		return nil, fmt.Errorf("%w: deleter must not return a value, has %d",
			ErrNotCallable, inv.numVals)
	}

	return func(inst Instance, args []any, kwargs map[string]any) error {
		positional := append([]any{inst}, args...)
		_, err := inv.call(positional, kwargs)
		return err
	}, nil
}
