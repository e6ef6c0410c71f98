package infmap

import (
	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// Build creates one entry per uniquely named interface, mixin or dictionary
// of idl, in order of first appearance. Partial fragments are merged into
// the entry of the same name. Parent and RefCount are left unresolved.
//
// Any malformed declaration aborts the whole build.
func Build(cfg *config.Config, idl *ast.File, bind *binding.File) ([]*Entry, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &builder{
		bind:     bind,
		byName:   make(map[string]*Entry),
		complete: make(map[string]bool),
	}
	if idl != nil {
		for _, d := range idl.Declarations {
			if err := b.addDecl(d); err != nil {
				return nil, err
			}
		}
		for _, d := range idl.Declarations {
			b.addInclude(d)
		}
	}
	if cfg.Verbose {
		logger.Infow("Mapping interfaces", "count", len(b.entries))
	}
	for _, e := range b.entries {
		if err := b.fill(e); err != nil {
			return nil, err
		}
	}
	return b.entries, nil
}

type builder struct {
	bind    *binding.File
	entries []*Entry
	byName  map[string]*Entry
	// complete tracks names that already have a non-partial definition.
	complete map[string]bool
}

// addDecl records a declaration fragment against its entry.
func (b *builder) addDecl(d ast.Decl) error {
	var (
		name, inherits string
		partial        bool
		kind           = KindInterface
		noObject       bool
	)
	switch d := d.(type) {
	case *ast.Interface:
		name, inherits, partial = d.Name, d.Inherits, d.Partial
		noObject = d.Callback
	case *ast.Mixin:
		name, inherits, partial = d.Name, d.Inherits, d.Partial
		noObject = true
	case *ast.Dictionary:
		name, inherits, partial = d.Name, d.Inherits, d.Partial
		kind = KindDictionary
	default:
		return nil
	}
	if name == "" {
		return errors.Wrapf(ErrMalformedDeclaration, "%s declared without a name at offset %d", kind, d.NodeBase().Start)
	}

	e, ok := b.byName[name]
	if !ok {
		e = &Entry{Name: name, Kind: kind, Parent: NoParent}
		b.byName[name] = e
		b.entries = append(b.entries, e)
	} else if e.Kind != kind {
		return errors.WithHint(
			errors.Wrapf(ErrDuplicateDeclaration, "%s %s redeclared as a %s", e.Kind, name, kind),
			"interfaces and dictionaries share one namespace",
		)
	}
	if noObject {
		e.NoObject = true
	}

	if partial {
		e.Decls = append(e.Decls, d)
		return nil
	}
	if b.complete[name] {
		return errors.WithHint(
			errors.Wrapf(ErrDuplicateDeclaration, "%s %s", kind, name),
			"use a partial declaration to extend an existing definition",
		)
	}
	b.complete[name] = true
	e.ParentName = inherits
	// keep the defining fragment first so its members lead
	e.Decls = append([]ast.Decl{d}, e.Decls...)
	return nil
}

// addInclude applies an includes or implements statement.
func (b *builder) addInclude(d ast.Decl) {
	var target, source string
	switch d := d.(type) {
	case *ast.Includes:
		target, source = d.Name, d.Source
	case *ast.Implementation:
		target, source = d.Name, d.Source
	default:
		return
	}
	e, ok := b.byName[target]
	if !ok {
		logger.Warnw("includes statement for unknown interface", "interface", target, "source", source)
		return
	}
	if _, ok := b.byName[source]; !ok {
		logger.Warnw("interface includes an unknown name", "interface", target, "source", source)
	}
	for _, name := range e.Includes {
		if name == source {
			logger.WarnIf(logger.WarnDuplicated, "interface included twice", "interface", target, "source", source)
			return
		}
	}
	e.Includes = append(e.Includes, source)
}

// fill sets the flags, class binding and member tables of an entry from all
// of its fragments.
func (b *builder) fill(e *Entry) error {
	e.Class = b.bind.Class(e.Name)

	ops := make(map[string]*Operation)
	for _, d := range e.Decls {
		var (
			ann       ast.Annotations
			members   []*ast.Member
			customOps []*ast.CustomOp
			iterable  *ast.Iterable
		)
		switch d := d.(type) {
		case *ast.Interface:
			ann, members, customOps, iterable = d.Annotations, d.Members, d.CustomOps, d.Iterable
		case *ast.Mixin:
			ann, members, customOps, iterable = d.Annotations, d.Members, d.CustomOps, d.Iterable
		case *ast.Dictionary:
			ann, members = d.Annotations, d.Members
		}

		if ann.Has("NoInterfaceObject") {
			e.NoObject = true
		}
		if ann.Has("PrimaryGlobal") {
			e.PrimaryGlobal = true
		}
		for _, op := range customOps {
			logger.WarnIf(logger.WarnUnimplemented, "custom operation not mapped", "interface", e.Name, "operation", op.Name)
		}
		if iterable != nil {
			logger.WarnIf(logger.WarnUnimplemented, "iterable declaration not mapped", "interface", e.Name)
		}

		for _, m := range members {
			var err error
			switch {
			case e.Kind == KindDictionary:
				err = b.addAttribute(e, m)
			case m.Kind() == ast.MemberOperation:
				err = b.addOperation(e, ops, m)
			case m.Kind() == ast.MemberAttribute:
				err = b.addAttribute(e, m)
			case m.Kind() == ast.MemberConstant:
				err = b.addConstant(e, m)
			}
			if err != nil {
				return errors.Wrapf(err, "%s %s", e.Kind, e.Name)
			}
		}
	}
	logger.Debugw("Mapped entry",
		"name", e.Name,
		"kind", e.Kind,
		"parent", e.ParentName,
		"bound", e.Class != nil,
		"operations", len(e.Operations),
		"attributes", len(e.Attributes),
		"constants", len(e.Constants))
	return nil
}

func (b *builder) addOperation(e *Entry, ops map[string]*Operation, m *ast.Member) error {
	if m.Name == "" {
		if m.Specialization != "" {
			logger.WarnIf(logger.WarnUnimplemented, "anonymous special operation not mapped",
				"interface", e.Name, "special", m.Specialization)
			return nil
		}
		return errors.Wrapf(ErrMalformedDeclaration, "operation without a name at offset %d", m.Start)
	}
	if m.Type == nil {
		return errors.Wrapf(ErrMalformedDeclaration, "operation %s has no return type", m.Name)
	}

	ov := &Overload{
		Member:  m,
		Return:  m.Type,
		Static:  m.Static,
		Special: m.Specialization,
	}
	for i, p := range m.Parameters {
		if p.Name == "" {
			return errors.Wrapf(ErrMalformedDeclaration, "operation %s: argument %d has no name", m.Name, i+1)
		}
		if p.Type == nil {
			return errors.Wrapf(ErrMalformedDeclaration, "operation %s: argument %s has no type", m.Name, p.Name)
		}
		if p.Optional {
			ov.OptionalCount++
		}
		if p.Variadic {
			ov.VariadicCount++
		}
		ov.Arguments = append(ov.Arguments, &Argument{
			Name:     p.Name,
			Type:     p.Type,
			Optional: p.Optional,
			Variadic: p.Variadic,
			Default:  p.Init,
		})
	}

	op, ok := ops[m.Name]
	if !ok {
		op = &Operation{
			Name:   m.Name,
			Method: e.Class.Method(binding.MethodOperation, m.Name),
		}
		ops[m.Name] = op
		e.Operations = append(e.Operations, op)
	}
	op.Overloads = append(op.Overloads, ov)
	return nil
}

func (b *builder) addAttribute(e *Entry, m *ast.Member) error {
	if m.Name == "" {
		return errors.Wrapf(ErrMalformedDeclaration, "attribute without a name at offset %d", m.Start)
	}
	if m.Type == nil {
		return errors.Wrapf(ErrMalformedDeclaration, "attribute %s has no type", m.Name)
	}
	a := &Attribute{
		Name:     m.Name,
		Member:   m,
		Type:     m.Type,
		Readonly: m.Readonly && e.Kind != KindDictionary,
		Static:   m.Static,
		Getter:   e.Class.Method(binding.MethodGetter, m.Name),
	}
	if pf := m.Annotations.Find("PutForwards"); pf != nil {
		a.PutForwards = pf.Value
	}
	if !a.Readonly || a.PutForwards != "" {
		a.Setter = e.Class.Method(binding.MethodSetter, m.Name)
	}
	e.Attributes = append(e.Attributes, a)
	return nil
}

func (b *builder) addConstant(e *Entry, m *ast.Member) error {
	if m.Name == "" {
		return errors.Wrapf(ErrMalformedDeclaration, "constant without a name at offset %d", m.Start)
	}
	if m.Init == nil {
		return errors.Wrapf(ErrMalformedDeclaration, "constant %s has no value", m.Name)
	}
	e.Constants = append(e.Constants, &Constant{Name: m.Name, Type: m.Type, Value: m.Init})
	return nil
}
