// Package jsgo is the embedder-facing entry point: acquire a Context,
// install standard objects, hand it host values, and run script text
// against it. Internally it composes interpreter.Interpreter for
// evaluation and hostbridge.Registry for reflective Go interop, mirroring
// the Context/Scriptable split of the Rhino lineage this engine descends
// from while keeping the surface idiomatic Go (explicit error returns, no
// checked exceptions to model).
package jsgo

import (
	"reflect"
	"sync"

	"github.com/example/jsgo/ast"
	"github.com/example/jsgo/builtins"
	"github.com/example/jsgo/hostbridge"
	"github.com/example/jsgo/interpreter"
	"github.com/example/jsgo/runtime"
)

// WrapFactory converts a host value into a script value. The default,
// installed by NewContext, delegates to the Context's hostbridge.Registry;
// SetWrapFactory lets an embedder override wrapping wholesale (e.g. to
// reject certain types outright).
type WrapFactory func(goVal interface{}) *runtime.Value

// Script is a parsed program that can be executed repeatedly, skipping
// re-lexing and re-parsing on each run.
type Script struct {
	program    *ast.Program
	sourceName string
}

// Context owns one interpreter instance, its global scope, and the host
// bridge registry used to wrap/unwrap Go values crossing into and out of
// script code. It is not safe for concurrent use by multiple goroutines
// without external synchronization, matching the teacher interpreter's
// single-threaded evaluator.
type Context struct {
	mu sync.Mutex

	interp   *interpreter.Interpreter
	registry *hostbridge.Registry
	wrap     WrapFactory
	entered  bool
	jobs     *runtime.JobQueue
}

// NewContext constructs a Context with its interpreter and host bridge
// wired together, but without standard objects installed — call
// InitStandardObjects before evaluating any script that uses them.
func NewContext() *Context {
	interp := interpreter.New()
	reg := hostbridge.NewRegistry(nil)
	ctx := &Context{interp: interp, registry: reg, jobs: &runtime.JobQueue{}}
	ctx.wrap = reg.Wrap
	return ctx
}

// Enter marks the Context as active for the current logical scope, and
// installs its Promise job queue as runtime.ActiveJobQueue (mirroring
// hostbridge.installHooks' single-Context-at-a-time HostGet/HostSet wiring —
// see hostbridge/registry.go). Pair with a deferred Exit(); Enter/Exit nest
// is a bookkeeping guard, not a lock — call it once per top-level use, not
// per statement.
func (c *Context) Enter() *Context {
	c.mu.Lock()
	c.entered = true
	runtime.ActiveJobQueue = c.jobs
	c.mu.Unlock()
	return c
}

// Exit releases the Context. Safe to call even if Enter was never called,
// so it can always be deferred right after NewContext.
func (c *Context) Exit() {
	c.mu.Lock()
	c.entered = false
	c.mu.Unlock()
}

// InitStandardObjects populates the Context's global scope with the
// standard library (Object, Array, Function, Math, JSON, Number, String,
// Boolean, Date, RegExp, the Error hierarchy, Map, Set, Symbol, Promise).
func (c *Context) InitStandardObjects() *Context {
	builtins.RegisterAll(c.interp.GlobalEnv(), nil)
	return c
}

// AddToScope installs a value into the global scope under name, wrapping
// it through the Context's WrapFactory unless it's already a
// *runtime.Value. scope is accepted for API symmetry with embedders that
// track multiple scopes; this engine has a single global scope per
// Context, so scope is currently ignored beyond a nil/non-nil check.
func (c *Context) AddToScope(scope interface{}, name string, value interface{}) {
	var v *runtime.Value
	if rv, ok := value.(*runtime.Value); ok {
		v = rv
	} else {
		v = c.wrap(value)
	}
	c.interp.GlobalEnv().Declare(name, "var", v)
}

// GlobalScope returns the Context's global environment, for embedders that
// want to pass it explicitly to AddToScope/EvaluateString.
func (c *Context) GlobalScope() *runtime.Environment {
	return c.interp.GlobalEnv()
}

// EvaluateString parses and runs source, returning the completion value.
// scope is accepted for embedder-API symmetry but ignored (see AddToScope).
// Promise reactions queued while source ran are drained afterward, the same
// run-to-completion-then-drain-jobs order a real event loop turn follows.
func (c *Context) EvaluateString(scope interface{}, source, sourceName string, startLine int) (*runtime.Value, error) {
	c.interp.SetSourceName(sourceName)
	result, err := c.interp.Eval(source)
	c.RunJobs()
	return result, err
}

// RunJobs drains any Promise reactions queued (by resolve/reject or by
// .then() on an already-settled promise) but not yet run. EvaluateString and
// Script.Exec call this automatically after the script itself finishes;
// exposed directly for embedders that resolve promises from Go code between
// script runs and need their reactions to fire.
func (c *Context) RunJobs() {
	c.jobs.Drain()
}

// CompileString parses source once for repeated execution via Script.Exec.
func (c *Context) CompileString(source, sourceName string) (*Script, error) {
	program, err := c.interp.ParseProgram(source)
	if err != nil {
		return nil, err
	}
	return &Script{program: program, sourceName: sourceName}, nil
}

// Exec runs a compiled Script against ctx's global scope. scope is accepted
// for embedder-API symmetry but ignored (see Context.AddToScope). Drains
// queued Promise reactions after running, like EvaluateString.
func (s *Script) Exec(ctx *Context, scope interface{}) (*runtime.Value, error) {
	ctx.interp.SetSourceName(s.sourceName)
	result, err := ctx.interp.ExecProgram(s.program)
	ctx.RunJobs()
	return result, err
}

// GetWrapFactory returns the Context's current host-to-script wrap
// function.
func (c *Context) GetWrapFactory() WrapFactory {
	return c.wrap
}

// SetWrapFactory overrides how host values crossing AddToScope (and, for
// values not already script-shaped, method return values) are wrapped.
func (c *Context) SetWrapFactory(f WrapFactory) {
	if f != nil {
		c.wrap = f
	}
}

// RegisterTypeWrapper registers a weight-0 nontrivial coercion for t,
// consulted by the host bridge before its default reflective wrap.
func (c *Context) RegisterTypeWrapper(t reflect.Type, w hostbridge.TypeWrapper) {
	c.registry.RegisterTypeWrapper(func(v reflect.Value) (*runtime.Value, bool) {
		if v.Type() != t {
			return nil, false
		}
		return w(v)
	})
}

// RegisterNative exposes a Go-implemented global function directly, for
// embedders that want a native without going through the host bridge's
// reflective call path (console.log-style shims, primarily).
func (c *Context) RegisterNative(name string, fn runtime.CallableFunc) {
	c.interp.RegisterNative(name, fn)
}

// SetMaxStackFrames bounds captured script call-stack depth for thrown
// errors surfaced by this Context's interpreter.
func (c *Context) SetMaxStackFrames(n int) {
	c.interp.SetMaxStackFrames(n)
}
