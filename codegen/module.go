// This file is part of intscript - https://github.com/mbrt/intscript
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/source"
)

// moduleContext holds one module's generation-time state: its own
// declarations plus the union of its direct imports' exports.
type moduleContext struct {
	ctx  *Context
	path string

	importedVars   map[string]bool
	importedConsts map[string]asm.Immediate

	ownVars   map[string]bool
	ownConsts map[string]asm.Immediate
}

// Generate lowers modules (keyed by canonical path, as returned by
// source.Load) into a flat assembly program. root names the module whose
// exported "main" function is the program's entry point.
func Generate(modules map[string]*source.Module, root string) (*Context, error) {
	order, err := topoSort(modules)
	if err != nil {
		return nil, err
	}
	ctx := NewContext()
	for _, path := range order {
		if err := processModule(ctx, modules[path]); err != nil {
			return nil, err
		}
	}
	rootExports, ok := ctx.exports[root]
	if !ok {
		return nil, errors.Errorf("internal error: root module %s was never generated", root)
	}
	mainFn, ok := rootExports.Constants["main"]
	if !ok {
		return nil, errors.Errorf("%s: root module must export a function named main", root)
	}

	start := newFuncGen(ctx, nil, "_start", nil)
	if _, err := start.genCallWith(asm.InParam{Mode: asm.ModeImmediate, Value: mainFn}, nil); err != nil {
		return nil, err
	}
	var startText []asm.Statement
	startText = append(startText, asm.Label{Name: "_start"})
	startText = append(startText, start.body...)
	startText = append(startText, asm.Halt{})
	for i := 0; i < start.maxSize; i++ {
		startText = append(startText, asm.Label{Name: localLabel("_start", i)}, asm.Int{Value: asm.Lit(0)})
	}
	// _start must sit at address 0: vm.New always begins execution at pc=0,
	// so it has to precede every module's own text, not follow it.
	ctx.Text = append(startText, ctx.Text...)
	return ctx, nil
}

func processModule(ctx *Context, m *source.Module) error {
	mc := &moduleContext{
		ctx:            ctx,
		path:           m.Path,
		importedVars:   map[string]bool{},
		importedConsts: map[string]asm.Immediate{"heapstart": asm.Ref("heapstart")},
		ownVars:        map[string]bool{},
		ownConsts:      map[string]asm.Immediate{},
	}
	for _, imp := range m.Imports {
		target := imp.Resolve(m.Context())
		exp, ok := ctx.exports[target]
		if !ok {
			return errors.Errorf("%s: cannot find dependency %s", m.Path, target)
		}
		for name := range exp.Variables {
			mc.importedVars[name] = true
		}
		for name, v := range exp.Constants {
			mc.importedConsts[name] = v
		}
	}

	for _, decl := range m.Body {
		if err := processDecl(mc, decl); err != nil {
			return err
		}
	}

	ctx.exports[m.Path] = Exports{Variables: mc.ownVars, Constants: mc.ownConsts}
	return nil
}

func (mc *moduleContext) checkFresh(name string) error {
	if mc.importedVars[name] {
		return errors.Errorf("%s: %q redeclares a name introduced by an import", mc.path, name)
	}
	if _, ok := mc.importedConsts[name]; ok {
		return errors.Errorf("%s: %q redeclares a name introduced by an import", mc.path, name)
	}
	if mc.ownVars[name] {
		return errors.Errorf("%s: %q is already declared", mc.path, name)
	}
	if _, ok := mc.ownConsts[name]; ok {
		return errors.Errorf("%s: %q is already declared", mc.path, name)
	}
	return nil
}

func processDecl(mc *moduleContext, decl source.Decl) error {
	switch v := decl.(type) {
	case source.Constant:
		if err := mc.checkFresh(v.Name); err != nil {
			return err
		}
		imm, err := evalConst(mc.ctx, mc, v.Value)
		if err != nil {
			return err
		}
		mc.ownConsts[v.Name] = imm
		return nil
	case source.DeclareScalar:
		if err := mc.checkFresh(v.Name); err != nil {
			return err
		}
		mc.ctx.Data = append(mc.ctx.Data, asm.Label{Name: globalLabel(v.Name)}, asm.Int{Value: asm.Lit(0)})
		mc.ownVars[v.Name] = true
		return nil
	case source.DeclareArray:
		if err := mc.checkFresh(v.Name); err != nil {
			return err
		}
		size, err := evalConst(mc.ctx, mc, v.Size)
		if err != nil {
			return err
		}
		n, ok := size.(asm.Lit)
		if !ok {
			return errors.Errorf("%s: array size for %q must be an integer constant", mc.path, v.Name)
		}
		label := globalLabel(v.Name)
		mc.ctx.Data = append(mc.ctx.Data, asm.Label{Name: label})
		for i := int64(0); i < int64(n); i++ {
			mc.ctx.Data = append(mc.ctx.Data, asm.Int{Value: asm.Lit(0)})
		}
		mc.ownConsts[v.Name] = asm.Ref(label)
		return nil
	case source.FunctionDef:
		if err := mc.checkFresh(v.Name); err != nil {
			return err
		}
		mc.ownConsts[v.Name] = asm.Ref(entryLabel(v.Name))
		return genFunction(mc, v)
	default:
		return errors.Errorf("codegen: unsupported declaration %T", decl)
	}
}

func genFunction(mc *moduleContext, fn source.FunctionDef) error {
	fg := newFuncGen(mc.ctx, mc, fn.Name, fn.Parameters)
	if err := fg.genBlock(fn.Body); err != nil {
		return err
	}
	if err := fg.genReturn(zeroExpr); err != nil {
		return err
	}

	var out []asm.Statement
	for i := range fn.Parameters {
		out = append(out, asm.Label{Name: argLabel(fn.Name, i+1)}, asm.Int{Value: asm.Lit(0)})
	}
	out = append(out, asm.Label{Name: outputLabel(fn.Name)}, asm.Int{Value: asm.Lit(0)})
	out = append(out, asm.Label{Name: returnLabel(fn.Name)}, asm.Int{Value: asm.Lit(0)})
	out = append(out, asm.Label{Name: entryLabel(fn.Name)})
	out = append(out, fg.body...)
	for i := 0; i < fg.maxSize; i++ {
		out = append(out, asm.Label{Name: localLabel(fn.Name, i)}, asm.Int{Value: asm.Lit(0)})
	}
	mc.ctx.Text = append(mc.ctx.Text, out...)
	return nil
}

var zeroExpr = source.IntLit{Value: 0}

// topoSort orders modules so that every module comes after its imports,
// failing with a diagnostic naming the cycle rather than looping forever
// the way the reference implementation's progress-halt does.
func topoSort(modules map[string]*source.Module) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(modules))
	var order []string

	var visit func(path string, chain []string) error
	visit = func(path string, chain []string) error {
		switch state[path] {
		case done:
			return nil
		case visiting:
			return errors.Errorf("import cycle: %s", strings.Join(append(chain, path), " -> "))
		}
		m, ok := modules[path]
		if !ok {
			return errors.Errorf("cannot find dependency %s", path)
		}
		state[path] = visiting
		for _, imp := range m.Imports {
			if err := visit(imp.Resolve(m.Context()), append(chain, path)); err != nil {
				return err
			}
		}
		state[path] = done
		order = append(order, path)
		return nil
	}

	for path := range modules {
		if err := visit(path, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
