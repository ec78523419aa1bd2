package beans

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// convertValue turns raw into a value assignable to typ. Editors registered
// for (typ, path) or typ win over the built-in conversion.
func (w *BeanWrapper) convertValue(path string, typ reflect.Type, raw any) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	if raw != nil && rv.Type().AssignableTo(typ) {
		return rv, nil
	}

	if editor := w.editors.Find(typ, path); editor != nil {
		out, err := editor.Convert(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if out == nil {
			return zeroFor(typ)
		}
		ov := reflect.ValueOf(out)
		if !ov.Type().AssignableTo(typ) {
			return reflect.Value{}, fmt.Errorf("editor returned %s, want %s", ov.Type(), typ)
		}
		return ov, nil
	}

	if raw == nil {
		return zeroFor(typ)
	}

	if !w.autoConvert {
		return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", rv.Type(), typ)
	}
	return decode(raw, typ)
}

func zeroFor(typ reflect.Type) (reflect.Value, error) {
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return reflect.Zero(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("nil is not a valid %s", typ)
}

// decodeHook covers the conversions configuration values usually need:
// "5s" to time.Duration, "a,b" to []string, and anything implementing
// encoding.TextUnmarshaler (time.Time, net.IP, ...). Numbers that do not fit
// the target and empty strings for numbers or bools are rejected first.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.DecodeHookFuncValue(checkScalarHook),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

// decode performs the default conversion with weakly typed input, so "8080"
// becomes an int, "true" a bool and a map[string]any a struct.
func decode(raw any, typ reflect.Type) (reflect.Value, error) {
	out := reflect.New(typ)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          TagName,
		MatchName:        func(key, field string) bool { return FoldName(key) == FoldName(field) },
		Result:           out.Interface(),
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return reflect.Value{}, err
	}
	return out.Elem(), nil
}

// FoldName normalizes a name for loose matching of configuration keys:
// poll_interval, POLL-INTERVAL and pollInterval all fold to pollinterval.
func FoldName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

var errEmptyString = errors.New("empty string")

// checkScalarHook refuses the lossy conversions weak decoding would otherwise
// accept: out-of-range numbers, negative values into unsigned kinds,
// fractional floats into integer kinds and "" into numbers or bools.
func checkScalarHook(from, to reflect.Value) (any, error) {
	for from.Kind() == reflect.Interface && !from.IsNil() {
		from = from.Elem()
	}
	if !from.IsValid() {
		return nil, nil
	}
	data := from.Interface()

	fk, tk := from.Kind(), to.Kind()
	switch {
	case fk == reflect.String:
		if from.Len() == 0 && (isInt(tk) || isUint(tk) || isFloat(tk) || tk == reflect.Bool) {
			return nil, fmt.Errorf("%w is not a valid %s", errEmptyString, to.Type())
		}

	case isInt(tk):
		switch {
		case isInt(fk):
			if to.OverflowInt(from.Int()) {
				return nil, overflow(data, to)
			}
		case isUint(fk):
			if u := from.Uint(); u > math.MaxInt64 || to.OverflowInt(int64(u)) {
				return nil, overflow(data, to)
			}
		case isFloat(fk):
			f := from.Float()
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("%v has a fractional part, want %s", data, to.Type())
			}
			if f < math.MinInt64 || f >= math.MaxInt64 || to.OverflowInt(int64(f)) {
				return nil, overflow(data, to)
			}
		}

	case isUint(tk):
		switch {
		case isInt(fk):
			if i := from.Int(); i < 0 || to.OverflowUint(uint64(i)) {
				return nil, overflow(data, to)
			}
		case isUint(fk):
			if to.OverflowUint(from.Uint()) {
				return nil, overflow(data, to)
			}
		case isFloat(fk):
			f := from.Float()
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("%v has a fractional part, want %s", data, to.Type())
			}
			if f < 0 || f >= math.MaxUint64 || to.OverflowUint(uint64(f)) {
				return nil, overflow(data, to)
			}
		}

	case isFloat(tk) && isFloat(fk):
		if to.OverflowFloat(from.Float()) {
			return nil, overflow(data, to)
		}
	}
	return data, nil
}

func overflow(v any, to reflect.Value) error {
	return fmt.Errorf("%v overflows %s", v, to.Type())
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
