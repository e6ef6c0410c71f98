package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dennwc/genbind/infmap"
)

func newMapCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "map <binding-file>",
		Short: "Show the ordered interface table",
		Long: `Show every mapped interface and dictionary in emission order, with its
parent, number of children, flags and binding class.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMap(o.cfg, args[0])
			if err != nil {
				return err
			}
			table, err := renderMap(m)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), table)
			return err
		},
	}
}

// mapTable returns the rows of the interface table, header first.
func mapTable(m *infmap.Map) pterm.TableData {
	data := pterm.TableData{
		{"#", "Name", "Kind", "Parent", "Children", "Flags", "Class", "Ops", "Attrs", "Consts"},
	}
	for i, e := range m.Entries() {
		parent := "-"
		if p := m.Parent(e); p != nil {
			parent = p.Name
		} else if e.ParentName != "" {
			parent = e.ParentName + " (unresolved)"
		}
		var flags []string
		if e.NoObject {
			flags = append(flags, "noobject")
		}
		if e.PrimaryGlobal {
			flags = append(flags, "global")
		}
		class := "-"
		if e.Class != nil {
			class = e.Class.Name
		}
		data = append(data, []string{
			strconv.Itoa(i),
			e.Name,
			e.Kind.String(),
			parent,
			strconv.Itoa(e.RefCount),
			strings.Join(flags, ","),
			class,
			strconv.Itoa(len(e.Operations)),
			strconv.Itoa(len(e.Attributes)),
			strconv.Itoa(len(e.Constants)),
		})
	}
	return data
}

func renderMap(m *infmap.Map) (string, error) {
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(mapTable(m)).
		Srender()
}
