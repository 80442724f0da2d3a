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
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofe/InputParameters"
	"github.com/notargets/gofe/fe"
)

const exampleFile = `
########################################
Title: "Test Case"
Dimension: 2
Tolerance: 1.e-10
Elements:
  - Name: taylor-hood
    Packing: interleaved # Can be "blocked"
    Bases:
      - Element: FE_Q(2)
        Multiplicity: 2
      - Element: FE_Q(1)
  - Name: flux
    Bases:
      - Element: FE_RaviartThomas(0)
########################################
`

func addInputFlags(c *cobra.Command) {
	c.Flags().StringP("inputFile", "I", "", "YAML file describing the elements, like:"+exampleFile)
}

// loadElements builds the elements named on the command line followed by those of the input file.
func loadElements(cmd *cobra.Command, args []string) (els []fe.Element, tol float64, err error) {
	var (
		inputFile, _ = cmd.Flags().GetString("inputFile")
		ip           = &InputParameters.InputParameters{
			Dimension: viper.GetInt("dim"),
			Tolerance: InputParameters.DefaultTolerance,
		}
	)
	if len(inputFile) == 0 && len(args) == 0 {
		err = fmt.Errorf("must name elements on the command line or supply an input file (-I, --inputFile)\nExample File:%s",
			exampleFile)
		return
	}
	if len(inputFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(inputFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", inputFile, err)
			return
		}
		logger.Debug("read input file", slog.String("file", inputFile), slog.String("title", ip.Title),
			slog.Int("elements", len(ip.Elements)))
	}
	named := make([]InputParameters.ElementParameters, len(args))
	for i, name := range args {
		named[i] = InputParameters.ElementParameters{
			Name:  name,
			Bases: []InputParameters.BaseParameters{{Element: name, Multiplicity: 1}},
		}
	}
	ip.Elements = append(named, ip.Elements...)
	if els, err = ip.BuildAll(); err != nil {
		return
	}
	for _, el := range els {
		logger.Debug("built element", slog.String("name", el.Name()), slog.Int("dofs", el.DofsPerCell()))
	}
	tol = ip.Tolerance
	return
}
