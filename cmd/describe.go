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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notargets/gofe/elements"
	"github.com/notargets/gofe/fe"
)

// DescribeCmd represents the describe command
var DescribeCmd = &cobra.Command{
	Use:   "describe [element names]",
	Short: "Print the descriptor and index tables of elements",
	Long: `
Prints the dof layout, primitivity, composition tables and transfer availability of each element.

gofe describe "FE_Q(2)" "FE_RaviartThomas(0)" -D 2`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var els []fe.Element
		if els, _, err = loadElements(cmd, args); err != nil {
			return
		}
		faces, _ := cmd.Flags().GetBool("faces")
		for _, el := range els {
			writeDescription(cmd.OutOrStdout(), el, faces)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(DescribeCmd)
	addInputFlags(DescribeCmd)
	DescribeCmd.Flags().BoolP("faces", "f", false, "also print the face tables")
}

func writeDescription(w io.Writer, el fe.Element, faces bool) {
	fd := el.Data()
	fmt.Fprintf(w, "%s\n\t%s\n", el.Name(), fd)
	for b := 0; b < el.NBaseElements(); b++ {
		fmt.Fprintf(w, "\tbase %d: %s x%d\n", b, el.BaseElement(b).Name(), el.ElementMultiplicity(b))
	}
	fmt.Fprintf(w, "\tprimitive: %t\n", el.IsPrimitive())
	fmt.Fprintf(w, "\trestriction: %s\n", implemented(el.RestrictionIsImplemented()))
	fmt.Fprintf(w, "\tprolongation: %s\n", implemented(el.ProlongationIsImplemented()))
	m, n := fe.InterfaceConstraintsSize(fd)
	fmt.Fprintf(w, "\tconstraints: %dx%d %s\n", m, n, implemented(el.ConstraintsAreImplemented()))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tdof\tbase,instance,index\tcomponent,index\tnonzero\tadditive\ton faces")
	for i := 0; i < el.DofsPerCell(); i++ {
		bi := el.SystemToBaseIndex(i)
		fmt.Fprintf(tw, "\t%d\t%d,%d,%d\t%s\t%v\t%t\t%v\n", i, bi.Base, bi.Instance, bi.Index,
			componentIndex(el.SystemToComponentIndex(i)), el.NonzeroComponents(i), el.RestrictionIsAdditive(i),
			supportFaces(el, i))
	}
	if faces {
		pts, err := elements.FaceSupportPoints(el)
		fmt.Fprintln(tw, "\tface dof\tbase,instance,index\tcomponent,index\tcell dof on face 0\tsupport point")
		for i := 0; i < fd.DofsPerFace; i++ {
			bi := el.FaceSystemToBaseIndex(i)
			point := "-"
			if err == nil {
				point = fmt.Sprintf("%v", pts[i])
			}
			fmt.Fprintf(tw, "\t%d\t%d,%d,%d\t%s\t%d\t%s\n", i, bi.Base, bi.Instance, bi.Index,
				componentIndex(el.FaceSystemToComponentIndex(i)), el.FaceToCellIndex(i, 0), point)
		}
	}
	fmt.Fprintln(tw, "\tcomponent\tbase,component")
	for c := 0; c < el.NComponents(); c++ {
		bc := el.ComponentToBase(c)
		fmt.Fprintf(tw, "\t%d\t%d,%d\n", c, bc.Base, bc.Component)
	}
	_ = tw.Flush()
}

// supportFaces lists the faces shape function i has support on.
func supportFaces(el fe.Element, i int) (faces []int) {
	faces = []int{}
	for f := 0; f < el.Data().Geometry().FacesPerCell; f++ {
		if el.HasSupportOnFace(i, f) {
			faces = append(faces, f)
		}
	}
	return
}

func componentIndex(ci fe.ComponentIndex, err error) string {
	if err != nil {
		return "non-primitive"
	}
	return fmt.Sprintf("%d,%d", ci.Component, ci.Index)
}

func implemented(ok bool) string {
	if ok {
		return "implemented"
	}
	return "not implemented"
}
