package evaluator

import (
	"iter"
	"slices"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/object"
)

// evalStatements runs stmts in the current frame and yields the value of
// the last one.
func (e *Evaluator) evalStatements(stmts []ast.Statement) (object.Object, error) {
	var result object.Object = object.NONE
	for _, stmt := range stmts {
		val, err := e.evalStatement(stmt)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement) (object.Object, error) {
	if block == nil {
		return object.NONE, nil
	}
	e.pushFrame(nil)
	defer e.popFrame()

	e.hoistFunctions(block.Statements)
	return e.evalStatements(block.Statements)
}

// hoistFunctions predeclares the functions of a statement list so calls
// may precede declarations.
func (e *Evaluator) hoistFunctions(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if fs, ok := stmt.(*ast.FunctionStatement); ok {
			e.define(fs.Name.Value, newFunction(fs))
		}
	}
}

func newFunction(fs *ast.FunctionStatement) *object.Function {
	return &object.Function{
		Name:       fs.Name.Value,
		Kind:       fs.Kind,
		Parameters: fs.Parameters,
		Body:       fs.Body,
	}
}

func (e *Evaluator) evalStatement(stmt ast.Statement) (object.Object, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return e.evalBinding(s.Name.Value, s.Value)
	case *ast.ConstStatement:
		return e.evalBinding(s.Name.Value, s.Value)
	case *ast.ExpressionStatement:
		return e.evalExpression(s.Expression)
	case *ast.PrintStatement:
		return e.evalPrintStatement(s)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(s)
	case *ast.IfStatement:
		return e.evalIfStatement(s)
	case *ast.WhileStatement:
		return e.evalWhileStatement(s)
	case *ast.ForStatement:
		return e.evalLoop(s.Variable, s.Iterable, s.Body, false)
	case *ast.ParallelForStatement:
		return e.evalLoop(s.Variable, s.Iterable, s.Body, false)
	case *ast.ParallelMapStatement:
		return e.evalLoop(s.Variable, s.Iterable, s.Body, true)
	case *ast.BlockStatement:
		return e.evalBlockStatement(s)
	case *ast.FunctionStatement:
		e.define(s.Name.Value, newFunction(s))
		return object.NONE, nil
	case *ast.ActorStatement:
		return e.evalContainer("actor", &s.ContainerBody)
	case *ast.ContractStatement:
		return e.evalContainer("contract", &s.ContainerBody)
	case *ast.MatchStatement:
		return e.evalMatch(s.Token, s.Subject, s.Arms, true)
	case *ast.ComponentStatement:
		e.logDeclaration("component", s.Name)
	case *ast.FlowStatement:
		e.logDeclaration("flow", s.Name)
	case *ast.DeploymentStatement:
		e.logDeclaration("deployment", s.Name)
	case *ast.ClusterStatement:
		e.logDeclaration("cluster", s.Name)
	case *ast.ImportStatement:
		e.logDeclaration("import", s.BindingName())
	case *ast.ModuleStatement:
		e.logDeclaration("module", s.Name)
	default:
		return nil, e.errorf(stmt.GetToken(), "unsupported statement %T", stmt)
	}
	return object.NONE, nil
}

func (e *Evaluator) evalBinding(name string, value ast.Expression) (object.Object, error) {
	val, err := e.evalExpression(value)
	if err != nil {
		return nil, err
	}
	e.define(name, val)
	return object.NONE, nil
}

func (e *Evaluator) evalPrintStatement(s *ast.PrintStatement) (object.Object, error) {
	val, err := e.evalExpression(s.Value)
	if err != nil {
		return nil, err
	}
	if _, err := e.Out.Write([]byte(val.Inspect() + "\n")); err != nil {
		return nil, e.errorf(s.Token, "print: %v", err)
	}
	return object.NONE, nil
}

func (e *Evaluator) evalReturnStatement(s *ast.ReturnStatement) (object.Object, error) {
	if s.Value == nil {
		return nil, &returnSignal{Value: object.NONE}
	}
	val, err := e.evalExpression(s.Value)
	if err != nil {
		return nil, err
	}
	return nil, &returnSignal{Value: val}
}

func (e *Evaluator) evalIfStatement(s *ast.IfStatement) (object.Object, error) {
	cond, err := e.evalExpression(s.Condition)
	if err != nil {
		return nil, err
	}
	if object.IsTruthy(cond) {
		return e.evalBlockStatement(s.Consequence)
	}
	if s.Alternative != nil {
		return e.evalBlockStatement(s.Alternative)
	}
	return object.NONE, nil
}

func (e *Evaluator) evalWhileStatement(s *ast.WhileStatement) (object.Object, error) {
	for {
		cond, err := e.evalExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		if !object.IsTruthy(cond) {
			return object.NONE, nil
		}
		if _, err := e.evalBlockStatement(s.Body); err != nil {
			return nil, err
		}
	}
}

// evalLoop runs a for loop. The loop variable lives in its own frame around
// the body. When collect is set the loop yields the list of body values.
func (e *Evaluator) evalLoop(variable *ast.Identifier, iterable ast.Expression, body *ast.BlockStatement, collect bool) (object.Object, error) {
	source, err := e.evalExpression(iterable)
	if err != nil {
		return nil, err
	}
	items, err := e.iterate(iterable, source)
	if err != nil {
		return nil, err
	}

	e.pushFrame(nil)
	defer e.popFrame()

	var results []object.Object
	for item := range items {
		e.frames[len(e.frames)-1][variable.Value] = item
		val, err := e.evalBlockStatement(body)
		if err != nil {
			return nil, err
		}
		if collect {
			results = append(results, val)
		}
	}

	if collect {
		if results == nil {
			results = []object.Object{}
		}
		return &object.List{Elements: results}, nil
	}
	return object.NONE, nil
}

// iterate walks the elements of a list, or 0..n-1 for an integral count n.
// Counts are produced one at a time.
func (e *Evaluator) iterate(node ast.Expression, source object.Object) (iter.Seq[object.Object], error) {
	switch s := source.(type) {
	case *object.List:
		return slices.Values(s.Elements), nil
	case *object.Number:
		if !s.IsIntegral() {
			return nil, e.errorf(node.GetToken(), "cannot iterate over non-integer %s", s.Inspect())
		}
		return count(0, s.Value), nil
	}
	return nil, e.errorf(node.GetToken(), "cannot iterate over %s", object.TypeName(source))
}

// evalContainer binds an actor or contract as a map of its evaluated state
// fields and its methods.
func (e *Evaluator) evalContainer(kind string, c *ast.ContainerBody) (object.Object, error) {
	container := object.NewMap()
	for _, field := range c.Fields {
		val, err := e.evalExpression(field.Value)
		if err != nil {
			return nil, err
		}
		container.Pairs[field.Name.Value] = val
	}
	for _, method := range c.Methods {
		container.Pairs[method.Name.Value] = newFunction(method)
	}
	e.define(c.Name.Value, container)
	e.Logger.Info("declared "+kind, "session", e.ID, "name", c.Name.Value,
		"fields", len(c.Fields), "methods", len(c.Methods))
	return object.NONE, nil
}

func (e *Evaluator) logDeclaration(kind, name string) {
	e.Logger.Info("declaration has no runtime effect", "session", e.ID, "kind", kind, "name", name)
}
