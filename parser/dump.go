package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kr/pretty"

	"github.com/dennwc/genbind/ast"
)

// Dump writes a readable rendition of the tree rooted at n. The declarations
// of a file are written one at a time, each under a line naming it.
func Dump(w io.Writer, n ast.Node) error {
	f, ok := n.(*ast.File)
	if !ok {
		_, err := pretty.Fprintf(w, "%# v\n", n)
		return err
	}
	for i, d := range f.Declarations {
		if _, err := fmt.Fprintf(w, "// %d: %s\n", i, describe(d)); err != nil {
			return err
		}
		if _, err := pretty.Fprintf(w, "%# v\n", d); err != nil {
			return err
		}
	}
	return nil
}

func DumpString(n ast.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Dump(buf, n); err != nil {
		panic(err)
	}
	return buf.String()
}

// describe names a declaration the way it is written in WebIDL.
func describe(d ast.Decl) string {
	partial := func(p bool, s string) string {
		if p {
			return "partial " + s
		}
		return s
	}
	switch d := d.(type) {
	case *ast.Interface:
		if d.Callback {
			return "callback interface " + d.Name
		}
		return partial(d.Partial, "interface "+d.Name)
	case *ast.Mixin:
		return partial(d.Partial, "interface mixin "+d.Name)
	case *ast.Dictionary:
		return partial(d.Partial, "dictionary "+d.Name)
	case *ast.Enum:
		return "enum " + d.Name
	case *ast.Callback:
		return "callback " + d.Name
	case *ast.Typedef:
		return "typedef " + d.Name
	case *ast.Includes:
		return d.Name + " includes " + d.Source
	case *ast.Implementation:
		return d.Name + " implements " + d.Source
	}
	return fmt.Sprintf("%T", d)
}
