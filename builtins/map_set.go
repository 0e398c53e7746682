package builtins

import (
	"fmt"

	"github.com/example/jsgo/runtime"
)

var (
	MapPrototype     *runtime.Object
	SetPrototype     *runtime.Object
	WeakMapPrototype *runtime.Object
	WeakSetPrototype *runtime.Object
)

func createMapConstructor(objProto *runtime.Object) (*runtime.Object, *runtime.Object) {
	proto := runtime.NewOrdinaryObject(objProto)
	proto.OType = runtime.ObjTypeMap
	MapPrototype = proto

	setMethod(proto, "get", 1, mapGet)
	setMethod(proto, "set", 2, mapSet)
	setMethod(proto, "has", 1, mapHas)
	setMethod(proto, "delete", 1, mapDelete)
	setMethod(proto, "clear", 0, mapClear)
	setMethod(proto, "forEach", 1, mapForEach)
	setMethod(proto, "keys", 0, mapKeys)
	setMethod(proto, "values", 0, mapValues)
	setMethod(proto, "entries", 0, mapEntries)

	ctor := newFuncObject("Map", 0, mapConstructorCall)
	ctor.Constructor = mapConstructorCall
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor, proto
}

func getOrderedMap(obj *runtime.Object) *runtime.OrderedMap {
	if obj == nil || obj.Internal == nil {
		return nil
	}
	om, _ := obj.Internal["map"].(*runtime.OrderedMap)
	return om
}

func mapConstructorCall(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeMap,
		Properties: make(map[string]*runtime.Property),
		Prototype:  MapPrototype,
		Internal:   map[string]interface{}{"map": runtime.NewOrderedMap()},
	}
	obj.Set("size", runtime.NewNumber(0))
	result := runtime.NewObject(obj)
	if len(args) > 0 && args[0].Type == runtime.TypeObject && args[0].Object != nil && args[0].Object.OType == runtime.ObjTypeArray {
		for _, item := range args[0].Object.ArrayData {
			if item.Type == runtime.TypeObject && item.Object != nil && item.Object.OType == runtime.ObjTypeArray && len(item.Object.ArrayData) >= 2 {
				_, _ = mapSet(result, []*runtime.Value{item.Object.ArrayData[0], item.Object.ArrayData[1]})
			}
		}
	}
	return result, nil
}

func mapGet(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	if om == nil {
		return runtime.Undefined, nil
	}
	if v, ok := om.Get(argAt(args, 0)); ok {
		return v, nil
	}
	return runtime.Undefined, nil
}

func mapSet(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	om := getOrderedMap(obj)
	if om == nil {
		return this, nil
	}
	om.Set(argAt(args, 0), argAt(args, 1))
	obj.Set("size", runtime.NewNumber(float64(om.Size())))
	return this, nil
}

func mapHas(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	if om == nil {
		return runtime.False, nil
	}
	return runtime.NewBool(om.Has(argAt(args, 0))), nil
}

func mapDelete(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	om := getOrderedMap(obj)
	if om == nil {
		return runtime.False, nil
	}
	deleted := om.Delete(argAt(args, 0))
	obj.Set("size", runtime.NewNumber(float64(om.Size())))
	return runtime.NewBool(deleted), nil
}

func mapClear(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	if om := getOrderedMap(obj); om != nil {
		om.Clear()
		obj.Set("size", runtime.NewNumber(0))
	}
	return runtime.Undefined, nil
}

func mapForEach(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	cb := getCallable(argAt(args, 0))
	if cb == nil {
		return nil, fmt.Errorf("TypeError: callback is not a function")
	}
	if om == nil {
		return runtime.Undefined, nil
	}
	var callErr error
	om.ForEach(func(k, v *runtime.Value) {
		if callErr != nil {
			return
		}
		_, callErr = cb(this, []*runtime.Value{v, k, this})
	})
	if callErr != nil {
		return nil, callErr
	}
	return runtime.Undefined, nil
}

func mapKeys(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	it := om.NewIterator()
	iter := &runtime.Object{
		OType:      runtime.ObjTypeIterator,
		Properties: make(map[string]*runtime.Property),
		IteratorNext: func() (*runtime.Value, bool) {
			k, _, done := it.Next()
			if done {
				return runtime.Undefined, true
			}
			return k, false
		},
	}
	setMethod(iter, "next", 0, makeIteratorNext(iter))
	return runtime.NewObject(iter), nil
}

func mapValues(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	it := om.NewIterator()
	iter := &runtime.Object{
		OType:      runtime.ObjTypeIterator,
		Properties: make(map[string]*runtime.Property),
		IteratorNext: func() (*runtime.Value, bool) {
			_, v, done := it.Next()
			if done {
				return runtime.Undefined, true
			}
			return v, false
		},
	}
	setMethod(iter, "next", 0, makeIteratorNext(iter))
	return runtime.NewObject(iter), nil
}

func mapEntries(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	it := om.NewIterator()
	iter := &runtime.Object{
		OType:      runtime.ObjTypeIterator,
		Properties: make(map[string]*runtime.Property),
		IteratorNext: func() (*runtime.Value, bool) {
			k, v, done := it.Next()
			if done {
				return runtime.Undefined, true
			}
			return createValueArray([]*runtime.Value{k, v}), false
		},
	}
	setMethod(iter, "next", 0, makeIteratorNext(iter))
	return runtime.NewObject(iter), nil
}

// --- Set ---

func createSetConstructor(objProto *runtime.Object) (*runtime.Object, *runtime.Object) {
	proto := runtime.NewOrdinaryObject(objProto)
	proto.OType = runtime.ObjTypeSet
	SetPrototype = proto

	setMethod(proto, "add", 1, setAdd)
	setMethod(proto, "has", 1, setHas)
	setMethod(proto, "delete", 1, setDelete)
	setMethod(proto, "clear", 0, setClear)
	setMethod(proto, "forEach", 1, setForEach)
	setMethod(proto, "keys", 0, setValues) // Set.keys === Set.values
	setMethod(proto, "values", 0, setValues)
	setMethod(proto, "entries", 0, setEntries)

	ctor := newFuncObject("Set", 0, setConstructorCall)
	ctor.Constructor = setConstructorCall
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor, proto
}

func setConstructorCall(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeSet,
		Properties: make(map[string]*runtime.Property),
		Prototype:  SetPrototype,
		Internal:   map[string]interface{}{"map": runtime.NewOrderedMap()},
	}
	obj.Set("size", runtime.NewNumber(0))
	result := runtime.NewObject(obj)
	if len(args) > 0 && args[0].Type == runtime.TypeObject && args[0].Object != nil && args[0].Object.OType == runtime.ObjTypeArray {
		for _, item := range args[0].Object.ArrayData {
			_, _ = setAdd(result, []*runtime.Value{item})
		}
	}
	return result, nil
}

func setAdd(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	om := getOrderedMap(obj)
	if om == nil {
		return this, nil
	}
	val := argAt(args, 0)
	om.Set(val, val)
	obj.Set("size", runtime.NewNumber(float64(om.Size())))
	return this, nil
}

func setHas(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	if om == nil {
		return runtime.False, nil
	}
	return runtime.NewBool(om.Has(argAt(args, 0))), nil
}

func setDelete(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	om := getOrderedMap(obj)
	if om == nil {
		return runtime.False, nil
	}
	deleted := om.Delete(argAt(args, 0))
	obj.Set("size", runtime.NewNumber(float64(om.Size())))
	return runtime.NewBool(deleted), nil
}

func setClear(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	if om := getOrderedMap(obj); om != nil {
		om.Clear()
		obj.Set("size", runtime.NewNumber(0))
	}
	return runtime.Undefined, nil
}

func setForEach(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	cb := getCallable(argAt(args, 0))
	if cb == nil {
		return nil, fmt.Errorf("TypeError: callback is not a function")
	}
	if om == nil {
		return runtime.Undefined, nil
	}
	var callErr error
	om.ForEach(func(k, v *runtime.Value) {
		if callErr != nil {
			return
		}
		_, callErr = cb(this, []*runtime.Value{v, k, this})
	})
	if callErr != nil {
		return nil, callErr
	}
	return runtime.Undefined, nil
}

func setValues(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	it := om.NewIterator()
	iter := &runtime.Object{
		OType:      runtime.ObjTypeIterator,
		Properties: make(map[string]*runtime.Property),
		IteratorNext: func() (*runtime.Value, bool) {
			v, _, done := it.Next()
			if done {
				return runtime.Undefined, true
			}
			return v, false
		},
	}
	setMethod(iter, "next", 0, makeIteratorNext(iter))
	return runtime.NewObject(iter), nil
}

func setEntries(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	om := getOrderedMap(toObject(this))
	it := om.NewIterator()
	iter := &runtime.Object{
		OType:      runtime.ObjTypeIterator,
		Properties: make(map[string]*runtime.Property),
		IteratorNext: func() (*runtime.Value, bool) {
			v, _, done := it.Next()
			if done {
				return runtime.Undefined, true
			}
			return createValueArray([]*runtime.Value{v, v}), false
		},
	}
	setMethod(iter, "next", 0, makeIteratorNext(iter))
	return runtime.NewObject(iter), nil
}

// --- WeakMap ---

func createWeakMapConstructor(objProto *runtime.Object) *runtime.Object {
	proto := runtime.NewOrdinaryObject(objProto)
	proto.OType = runtime.ObjTypeWeakMap
	WeakMapPrototype = proto

	setMethod(proto, "get", 1, weakMapGet)
	setMethod(proto, "set", 2, weakMapSet)
	setMethod(proto, "has", 1, weakMapHas)
	setMethod(proto, "delete", 1, weakMapDelete)

	ctor := newFuncObject("WeakMap", 0, weakMapConstructorCall)
	ctor.Constructor = weakMapConstructorCall
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}

// WeakMap uses the same internal map approach but keyed by object pointer
func getWeakMapStore(obj *runtime.Object) map[*runtime.Object]*runtime.Value {
	if obj == nil || obj.Internal == nil {
		return nil
	}
	store, _ := obj.Internal["store"].(map[*runtime.Object]*runtime.Value)
	return store
}

func weakMapConstructorCall(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeWeakMap,
		Properties: make(map[string]*runtime.Property),
		Prototype:  WeakMapPrototype,
		Internal:   map[string]interface{}{"store": make(map[*runtime.Object]*runtime.Value)},
	}
	return runtime.NewObject(obj), nil
}

func weakMapGet(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakMapStore(obj)
	key := argAt(args, 0)
	if key.Type != runtime.TypeObject || key.Object == nil {
		return runtime.Undefined, nil
	}
	if v, ok := store[key.Object]; ok {
		return v, nil
	}
	return runtime.Undefined, nil
}

func weakMapSet(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakMapStore(obj)
	key := argAt(args, 0)
	val := argAt(args, 1)
	if key.Type != runtime.TypeObject || key.Object == nil {
		return nil, fmt.Errorf("TypeError: Invalid value used as weak map key")
	}
	store[key.Object] = val
	return this, nil
}

func weakMapHas(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakMapStore(obj)
	key := argAt(args, 0)
	if key.Type != runtime.TypeObject || key.Object == nil {
		return runtime.False, nil
	}
	_, ok := store[key.Object]
	return runtime.NewBool(ok), nil
}

func weakMapDelete(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakMapStore(obj)
	key := argAt(args, 0)
	if key.Type != runtime.TypeObject || key.Object == nil {
		return runtime.False, nil
	}
	if _, ok := store[key.Object]; ok {
		delete(store, key.Object)
		return runtime.True, nil
	}
	return runtime.False, nil
}

// --- WeakSet ---

func createWeakSetConstructor(objProto *runtime.Object) *runtime.Object {
	proto := runtime.NewOrdinaryObject(objProto)
	proto.OType = runtime.ObjTypeWeakSet
	WeakSetPrototype = proto

	setMethod(proto, "add", 1, weakSetAdd)
	setMethod(proto, "has", 1, weakSetHas)
	setMethod(proto, "delete", 1, weakSetDelete)

	ctor := newFuncObject("WeakSet", 0, weakSetConstructorCall)
	ctor.Constructor = weakSetConstructorCall
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}

func getWeakSetStore(obj *runtime.Object) map[*runtime.Object]struct{} {
	if obj == nil || obj.Internal == nil {
		return nil
	}
	store, _ := obj.Internal["store"].(map[*runtime.Object]struct{})
	return store
}

func weakSetConstructorCall(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeWeakSet,
		Properties: make(map[string]*runtime.Property),
		Prototype:  WeakSetPrototype,
		Internal:   map[string]interface{}{"store": make(map[*runtime.Object]struct{})},
	}
	return runtime.NewObject(obj), nil
}

func weakSetAdd(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakSetStore(obj)
	val := argAt(args, 0)
	if val.Type != runtime.TypeObject || val.Object == nil {
		return nil, fmt.Errorf("TypeError: Invalid value used in weak set")
	}
	store[val.Object] = struct{}{}
	return this, nil
}

func weakSetHas(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakSetStore(obj)
	val := argAt(args, 0)
	if val.Type != runtime.TypeObject || val.Object == nil {
		return runtime.False, nil
	}
	_, ok := store[val.Object]
	return runtime.NewBool(ok), nil
}

func weakSetDelete(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	store := getWeakSetStore(obj)
	val := argAt(args, 0)
	if val.Type != runtime.TypeObject || val.Object == nil {
		return runtime.False, nil
	}
	if _, ok := store[val.Object]; ok {
		delete(store, val.Object)
		return runtime.True, nil
	}
	return runtime.False, nil
}
