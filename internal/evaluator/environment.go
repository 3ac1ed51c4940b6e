package evaluator

import (
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/token"
)

// pushFrame opens a scope frame. Every call must be paired with a deferred
// popFrame so that frames are released on error paths too.
func (e *Evaluator) pushFrame(frame map[string]object.Object) {
	if frame == nil {
		frame = make(map[string]object.Object)
	}
	e.frames = append(e.frames, frame)
	e.Logger.Debug("push frame", "session", e.ID, "depth", len(e.frames))
}

func (e *Evaluator) popFrame() {
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
	e.Logger.Debug("pop frame", "session", e.ID, "depth", len(e.frames))
}

// define binds name in the innermost frame, or globally outside any frame.
func (e *Evaluator) define(name string, val object.Object) {
	if n := len(e.frames); n > 0 {
		e.frames[n-1][name] = val
		return
	}
	e.globals[name] = val
}

// lookup searches frames innermost-first, then globals. Lists and maps
// are copied so no two bindings share one.
func (e *Evaluator) lookup(name string) (object.Object, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return object.Copy(v), true
		}
	}
	if v, ok := e.globals[name]; ok {
		return object.Copy(v), true
	}
	return nil, false
}

func (e *Evaluator) isDefined(name string) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			return true
		}
	}
	_, ok := e.globals[name]
	return ok
}

// assign updates the nearest existing binding of name.
func (e *Evaluator) assign(tok token.Token, name string, val object.Object) error {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			e.frames[i][name] = val
			return nil
		}
	}
	if _, ok := e.globals[name]; ok {
		e.globals[name] = val
		return nil
	}
	return e.errorf(tok, "undefined variable: %s", name)
}
