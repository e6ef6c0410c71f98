package infmap

import (
	"fmt"
	"io"
)

// dumpWriter keeps the first write error so the dump code can ignore it.
type dumpWriter struct {
	w   io.Writer
	err error
}

func (d *dumpWriter) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func bound(present bool) string {
	if present {
		return "bound"
	}
	return "-"
}

// Dump writes a text listing of the map in emission order.
func (m *Map) Dump(w io.Writer) error {
	d := &dumpWriter{w: w}
	for i, e := range m.entries {
		d.printf("%d %s\n", i, e.Name)
		if e.Kind == KindDictionary {
			d.printf("\tdictionary\n")
		}
		if e.ParentName != "" {
			d.printf("\tinherit: %s\n", e.ParentName)
		}
		if e.Class != nil {
			d.printf("\tclass: %s\n", e.Class.Name)
		}
		if e.NoObject {
			d.printf("\tnoobject\n")
		}
		if e.PrimaryGlobal {
			d.printf("\tprimary global\n")
		}
		for _, inc := range e.Includes {
			d.printf("\tincludes: %s\n", inc)
		}
		if len(e.Operations) > 0 {
			d.printf("\t%d operations\n", len(e.Operations))
			for _, op := range e.Operations {
				d.printf("\t\t%s\n", op.Name)
				d.printf("\t\t\tmethod: %s\n", bound(op.Method != nil))
				d.printf("\t\t\toverloads: %d\n", len(op.Overloads))
			}
		}
		if len(e.Attributes) > 0 {
			d.printf("\t%d attributes\n", len(e.Attributes))
			for _, a := range e.Attributes {
				d.printf("\t\t%s getter: %s", a.Name, bound(a.Getter != nil))
				if !a.Readonly || a.PutForwards != "" {
					d.printf(" setter: %s", bound(a.Setter != nil))
				}
				if a.PutForwards != "" {
					d.printf(" putforwards: %s", a.PutForwards)
				}
				d.printf("\n")
			}
		}
		if len(e.Constants) > 0 {
			d.printf("\t%d constants\n", len(e.Constants))
			for _, c := range e.Constants {
				if v, err := c.Int(); err == nil {
					d.printf("\t\t%s = %d\n", c.Name, v)
				} else if u, err := c.Uint(); err == nil {
					d.printf("\t\t%s = %d\n", c.Name, u)
				} else {
					d.printf("\t\t%s\n", c.Name)
				}
			}
		}
	}
	return d.err
}

// DumpDot writes the inheritance graph in Graphviz format. No-object
// entries are red and entries bound to a class are blue.
func (m *Map) DumpDot(w io.Writer) error {
	d := &dumpWriter{w: w}
	d.printf("digraph interfaces {\n")
	d.printf("node [shape=box]\n")
	for i, e := range m.entries {
		d.printf("%04d [label=%q", i, e.Name)
		switch {
		case e.NoObject:
			d.printf(" fontcolor=\"red\"")
		case e.Class != nil:
			d.printf(" fontcolor=\"blue\"")
		}
		d.printf("];\n")
	}
	for i, e := range m.entries {
		if e.Parent != NoParent {
			d.printf("%04d -> %04d;\n", i, e.Parent)
		}
	}
	d.printf("}\n")
	return d.err
}
