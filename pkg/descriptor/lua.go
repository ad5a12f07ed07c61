package descriptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	lua "github.com/yuin/gopher-lua"
)

// verbOrder fixes the discovery order of verb exports.
var verbOrder = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// luaFile is one loaded descriptor. The underlying state is not safe
// for concurrent use: load a fresh file per request and release it with
// close when done.
type luaFile struct {
	state *lua.LState
	rel   string
}

// loadLuaFile executes a descriptor in a fresh, isolated state. The
// http module is preloaded so providers can fetch remote data with
// `local http = require("http")`.
func loadLuaFile(abs, rel string, client *http.Client) (f *luaFile, err error) {
	state := lua.NewState()
	state.PreloadModule("http", gluahttp.NewHttpModule(client).Loader)

	// A descriptor can fail by panicking inside a Go-bound function
	// during its top-level chunk; contain that at the file granularity.
	defer func() {
		if r := recover(); r != nil {
			state.Close()
			f, err = nil, fmt.Errorf("descriptor panicked during load: %v", r)
		}
	}()

	if err := state.DoFile(abs); err != nil {
		state.Close()
		return nil, err
	}
	return &luaFile{state: state, rel: rel}, nil
}

func (f *luaFile) close() {
	f.state.Close()
}

// global returns the named exported function, if present.
func (f *luaFile) global(name string) (*lua.LFunction, bool) {
	v := f.state.GetGlobal(name)
	if fn, ok := v.(*lua.LFunction); ok {
		return fn, true
	}
	return nil, false
}

// firstGlobal returns the first exported function among the aliases.
func (f *luaFile) firstGlobal(aliases []string) (*lua.LFunction, bool) {
	for _, name := range aliases {
		if fn, ok := f.global(name); ok {
			return fn, true
		}
	}
	return nil, false
}

func (f *luaFile) verbs() []string {
	var out []string
	for _, verb := range verbOrder {
		if _, ok := f.global(verb); ok {
			out = append(out, verb)
		}
	}
	return out
}

func (f *luaFile) provider() (ProviderFunc, bool) {
	fn, ok := f.firstGlobal(providerAliases)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, req *Request) (Result, error) {
		ret, err := f.call(ctx, fn, 1, f.requestTable(req))
		if err != nil {
			return Result{}, err
		}
		switch v := ret[0].(type) {
		case *lua.LTable:
			return Result{Props: tableToProps(v)}, nil
		case *lua.LNilType:
			return Result{}, nil
		default:
			return Result{}, fmt.Errorf("provider in %s returned %s, want table", f.rel, v.Type())
		}
	}, true
}

func (f *luaFile) verbHandler(verb string) (APIFunc, bool) {
	fn, ok := f.global(verb)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, req *Request) (*APIResult, error) {
		ret, err := f.call(ctx, fn, 2, f.requestTable(req))
		if err != nil {
			return nil, err
		}

		res := &APIResult{Status: http.StatusOK}
		if status, ok := ret[1].(lua.LNumber); ok {
			res.Status = int(status)
		}

		switch body := ret[0].(type) {
		case *lua.LTable:
			data, err := json.Marshal(luaToGo(body))
			if err != nil {
				return nil, fmt.Errorf("encoding response of %s: %w", f.rel, err)
			}
			res.ContentType = "application/json; charset=utf-8"
			res.Body = data
		case lua.LString:
			res.ContentType = "text/plain; charset=utf-8"
			res.Body = []byte(body)
		case *lua.LNilType:
			if res.Status == http.StatusOK {
				res.Status = http.StatusNoContent
			}
		default:
			return nil, fmt.Errorf("handler %s in %s returned %s, want table or string", verb, f.rel, body.Type())
		}
		return res, nil
	}, true
}

func (f *luaFile) errorHandler() (ErrorFunc, bool) {
	fn, ok := f.firstGlobal(errorAliases)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, req *Request, cause error) (string, error) {
		ret, err := f.call(ctx, fn, 1, f.requestTable(req), lua.LString(cause.Error()))
		if err != nil {
			return "", err
		}
		s, ok := ret[0].(lua.LString)
		if !ok {
			return "", fmt.Errorf("error handler in %s returned %s, want string", f.rel, ret[0].Type())
		}
		return string(s), nil
	}, true
}

func (f *luaFile) loadingHandler() (LoadingFunc, bool) {
	fn, ok := f.firstGlobal(loadingAliases)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, req *Request) (string, error) {
		ret, err := f.call(ctx, fn, 1, f.requestTable(req))
		if err != nil {
			return "", err
		}
		s, ok := ret[0].(lua.LString)
		if !ok {
			return "", fmt.Errorf("loading handler in %s returned %s, want string", f.rel, ret[0].Type())
		}
		return string(s), nil
	}, true
}

// call invokes a descriptor function with a protected call and returns
// nret values from the stack. Raised Lua errors come back as Go errors.
func (f *luaFile) call(ctx context.Context, fn *lua.LFunction, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	f.state.SetContext(ctx)
	if err := f.state.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...); err != nil {
		return nil, err
	}

	ret := make([]lua.LValue, nret)
	for i := nret - 1; i >= 0; i-- {
		ret[i] = f.state.Get(-1)
		f.state.Pop(1)
	}
	return ret, nil
}

// requestTable builds the Lua view of a request.
func (f *luaFile) requestTable(req *Request) *lua.LTable {
	t := f.state.NewTable()
	t.RawSetString("method", lua.LString(req.Method))
	t.RawSetString("path", lua.LString(req.Path))
	t.RawSetString("route", lua.LString(req.Route))

	params := f.state.NewTable()
	for k, v := range req.PathParams {
		params.RawSetString(k, lua.LString(v))
	}
	t.RawSetString("params", params)

	query := f.state.NewTable()
	for k, vs := range req.QueryParams {
		if len(vs) > 0 {
			query.RawSetString(k, lua.LString(vs[0]))
		}
	}
	t.RawSetString("query", query)

	headers := f.state.NewTable()
	for k := range req.Header {
		headers.RawSetString(k, lua.LString(req.Header.Get(k)))
	}
	t.RawSetString("headers", headers)

	return t
}

// tableToProps converts a returned table into a props mapping.
func tableToProps(t *lua.LTable) Props {
	props := make(Props)
	t.ForEach(func(k, v lua.LValue) {
		props[lua.LVAsString(k)] = luaToGo(v)
	})
	return props
}

// luaToGo converts a Lua value into its Go rendering. Tables with
// consecutive integer keys become slices, everything else a map.
func luaToGo(v lua.LValue) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if n := v.MaxN(); n > 0 {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, luaToGo(v.RawGetInt(i)))
			}
			return arr
		}
		m := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			m[lua.LVAsString(k)] = luaToGo(val)
		})
		return m
	default:
		return v.String()
	}
}
