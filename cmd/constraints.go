/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gofe/fe"
)

// ConstraintsCmd represents the constraints command
var ConstraintsCmd = &cobra.Command{
	Use:   "constraints [element names]",
	Short: "Print the hanging node constraints of elements",
	Long: `
Prints, for every dof on a refined face, its expression in terms of the dofs on the coarse face.

gofe constraints "FE_Q(2)" -D 3`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var els []fe.Element
		if els, _, err = loadElements(cmd, args); err != nil {
			return
		}
		dense, _ := cmd.Flags().GetBool("dense")
		for _, el := range els {
			if err = writeConstraints(cmd.OutOrStdout(), el, dense); err != nil {
				return
			}
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(ConstraintsCmd)
	addInputFlags(ConstraintsCmd)
	ConstraintsCmd.Flags().Bool("dense", false, "print the full matrix instead of one line per constrained dof")
}

var groupNames = []string{"vertex", "line", "quad"}

func writeConstraints(w io.Writer, el fe.Element, dense bool) (err error) {
	fd := el.Data()
	fmt.Fprintf(w, "%s\n", el.Name())
	if !el.ConstraintsAreImplemented() {
		fmt.Fprintf(w, "\tnot implemented\n")
		return
	}
	C, err := el.Constraints()
	if err != nil {
		return
	}
	if C.IsEmpty() {
		fmt.Fprintf(w, "\tno constrained dofs\n")
		return
	}
	fmt.Fprintf(w, "\trows: %s\n\tcolumns: %s\n",
		describeGroups(fe.ConstraintRowGroups(fd.Dim)), describeGroups(fe.ConstraintColumnGroups(fd.Dim)))
	if dense {
		fmt.Fprintf(w, "%v\n", C)
		return
	}
	m, n := C.Dims()
	cs := fe.NewConstraintSet(m, n)
	for i := 0; i < m; i++ {
		cols := make([]int, n)
		for j := range cols {
			cols[j] = j
		}
		if err = cs.AddConstraint(i, cols, C.Row(i)); err != nil {
			return
		}
	}
	for i := 0; i < m; i++ {
		cols, weights := cs.Line(i)
		terms := make([]string, len(cols))
		for k := range cols {
			terms[k] = fmt.Sprintf("%.6g*c%d", weights[k], cols[k])
		}
		fmt.Fprintf(w, "\tf%d = %s\n", i, strings.Join(terms, " + "))
	}
	return
}

// describeGroups run length encodes a group layout, e.g. "5 vertex, 12 line, 4 quad".
func describeGroups(groups []int) string {
	var parts []string
	for g := 0; g < len(groups); {
		n := 1
		for g+n < len(groups) && groups[g+n] == groups[g] {
			n++
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, groupNames[groups[g]]))
		g += n
	}
	return strings.Join(parts, ", ")
}
