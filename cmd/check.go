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
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gofe/elements"
	"github.com/notargets/gofe/fe"
	"github.com/notargets/gofe/utils"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [element names]",
	Short: "Verify the composition, transfer and constraint laws of elements",
	Long: `
Checks, for each element, that component indices round trip, that prolongation matrices agree on
dofs shared by children, that restriction matrices invert prolongation and that face constraints
agree across shared lines. Elements are checked in parallel.

gofe check -I elements.yaml --workers 4`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			els []fe.Element
			tol float64
		)
		if els, tol, err = loadElements(cmd, args); err != nil {
			return
		}
		workers, _ := cmd.Flags().GetInt("workers")
		start := time.Now()
		results := checkElements(els, tol, workers)
		logger.Info("checked elements", slog.Int("count", len(els)), slog.Duration("elapsed", time.Since(start)))
		if failed := writeResults(cmd.OutOrStdout(), results); failed != 0 {
			err = fmt.Errorf("%d of %d elements failed", failed, len(results))
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	addInputFlags(CheckCmd)
	CheckCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "number of elements checked concurrently")
}

type checkResult struct {
	name string
	err  error
}

// checkElements splits the elements into partitions and checks each partition on its own goroutine.
func checkElements(els []fe.Element, tol float64, workers int) (results []checkResult) {
	var (
		wg sync.WaitGroup
		pm = utils.NewPartitionMap(min(workers, max(len(els), 1)), len(els))
	)
	results = make([]checkResult, len(els))
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			logger.Debug("checking partition", slog.Int("partition", np),
				slog.Int("elements", pm.GetBucketDimension(np)))
			for k := kMin; k < kMax; k++ {
				results[k] = checkResult{name: els[k].Name(), err: checkElement(els[k], tol)}
			}
		}(np)
	}
	wg.Wait()
	return
}

func checkElement(el fe.Element, tol float64) (err error) {
	for i := 0; i < el.DofsPerCell(); i++ {
		if !el.IsPrimitiveShape(i) {
			continue
		}
		var (
			ci fe.ComponentIndex
			j  int
		)
		if ci, err = el.SystemToComponentIndex(i); err != nil {
			return
		}
		if j, err = el.ComponentToSystemIndex(ci.Component, ci.Index); err != nil {
			return
		}
		if j != i {
			return fmt.Errorf("%w: shape function %d maps to %v and back to %d",
				fe.ErrComponentIndexInvalid, i, ci, j)
		}
	}
	if err = elements.CheckTransferLaws(el, tol); err != nil {
		return
	}
	if el.ConstraintsAreImplemented() {
		var C utils.Matrix
		if C, err = el.Constraints(); err != nil {
			return
		}
		if err = fe.CheckConstraintConsistency(el.Data(), C); err != nil {
			return
		}
		err = elements.CheckSharedLineConstraints(el)
	}
	return
}

func writeResults(w io.Writer, results []checkResult) (failed int) {
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL\t%s: %v\n", r.name, r.err)
			continue
		}
		fmt.Fprintf(w, "ok\t%s\n", r.name)
	}
	return
}
