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
	"os"
	"time"

	"github.com/notargets/starcsr/InputParameters"
	"github.com/notargets/starcsr/mesh"
	"github.com/notargets/starcsr/mesh/readers"
	"github.com/notargets/starcsr/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type ModelCSR struct {
	MeshFile       string
	ParamsFile     string
	OutputFile     string
	ParallelDegree int
	Profile        bool
}

const exampleParamsFile = `
########################################
Title: "Test Case"
BaseName: meshes/cube    # cube.vrt, cube.cel and cube.bnd
IndexOffset: 1           # StarCD ids are 1-based
OffsetBoundaries: true   # apply IndexOffset to .bnd ids too
ParallelDegree: 4
OutputFile: cube.csr
########################################
`

// CSRCmd represents the csr command
var CSRCmd = &cobra.Command{
	Use:   "csr",
	Short: "Build the node adjacency of a StarCD tetrahedral mesh",
	Long: `
Loads a StarCD mesh, builds the compressed sparse row node adjacency (IA, JA),
validates it and logs a summary. With -o the adjacency is written as text:

	nodes nnz
	IA...
	JA...

starcsr csr -F meshes/cube -p 4 -o cube.csr`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mc := &ModelCSR{}
		mc.MeshFile, _ = cmd.Flags().GetString("gridFile")
		mc.ParamsFile, _ = cmd.Flags().GetString("inputParametersFile")
		mc.OutputFile, _ = cmd.Flags().GetString("output")
		mc.Profile, _ = cmd.Flags().GetBool("profile")
		var mp *InputParameters.MeshParameters
		if mp, err = processInput(mc, cmd.Flags().Changed("parallel")); err != nil {
			return
		}
		if mc.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		_, err = RunCSR(mc, mp, logger)
		return
	},
}

func init() {
	rootCmd.AddCommand(CSRCmd)
	CSRCmd.Flags().StringP("gridFile", "F", "", "StarCD mesh basename, or any of its .vrt/.cel/.bnd files")
	CSRCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with mesh parameters")
	CSRCmd.Flags().StringP("output", "o", "", "write IA and JA to this file")
	CSRCmd.Flags().IntP("parallel", "p", 1, "number of goroutines building the adjacency")
	CSRCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	_ = viper.BindPFlag("parallel", CSRCmd.Flags().Lookup("parallel"))
}

// processInput reconciles the command line with the parameters file, command line flags win
func processInput(mc *ModelCSR, parallelSet bool) (mp *InputParameters.MeshParameters, err error) {
	mp = &InputParameters.MeshParameters{}
	if len(mc.ParamsFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mc.ParamsFile); err != nil {
			return nil, err
		}
		if err = mp.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", mc.ParamsFile, err)
		}
		mp.Print()
	}
	if len(mc.MeshFile) == 0 {
		mc.MeshFile = mp.BaseName
	}
	if len(mc.MeshFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleParamsFile)
		return nil, fmt.Errorf("must supply a mesh (-F, --gridFile) or a parameters file (-I) naming BaseName")
	}
	if len(mc.OutputFile) == 0 {
		mc.OutputFile = mp.OutputFile
	}
	mc.ParallelDegree = mp.ParallelDegree
	if parallelSet || mc.ParallelDegree == 0 {
		mc.ParallelDegree = viper.GetInt("parallel")
	}
	if mc.ParallelDegree < 1 {
		return nil, fmt.Errorf("parallel degree must be at least 1, have %d", mc.ParallelDegree)
	}
	return
}

// RunCSR loads the mesh and builds, checks, reports and optionally writes its adjacency
func RunCSR(mc *ModelCSR, mp *InputParameters.MeshParameters, logger *zap.Logger) (c mesh.CSR, err error) {
	var (
		g     *mesh.Grid
		start = time.Now()
	)
	if g, err = readers.ReadMeshFileWithOptions(mc.MeshFile, mp.ReaderOptions(logger)); err != nil {
		return
	}
	g.LogStatistics(logger)
	logger.Debug("mesh loaded", zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	if mc.ParallelDegree > 1 {
		if c, err = mesh.BuildCSRParallel(g, mc.ParallelDegree); err != nil {
			return
		}
	} else {
		c = mesh.BuildCSR(g)
	}
	if err = c.Validate(); err != nil {
		return c, fmt.Errorf("adjacency failed validation: %w", err)
	}
	var pattern utils.CSR
	if pattern, err = c.Pattern(); err != nil {
		return
	}
	pattern.SetReadOnly("adjacency pattern")
	// Row sums of the pattern are the node degrees
	var entries float64
	for _, d := range pattern.MulVec(ones(c.NumNodes())) {
		entries += d
	}
	logger.Info("node adjacency",
		zap.Int("nodes", c.NumNodes()),
		zap.Int("nnz", c.NNZ()),
		zap.Int("patternNNZ", pattern.NNZ()),
		zap.Float64("patternEntries", entries),
		zap.Int("maxDegree", c.MaxDegree()),
		zap.Int("edges", len(c.Edges())),
		zap.Int("components", c.ConnectedComponents()),
		zap.Int("parallelDegree", mc.ParallelDegree),
		zap.Duration("elapsed", time.Since(start)),
	)
	logger.Debug("memory", zap.Stringer("usage", utils.GetMemUsage()))

	if len(mc.OutputFile) != 0 {
		if err = writeCSR(mc.OutputFile, c); err != nil {
			return
		}
		logger.Info("wrote adjacency", zap.String("file", mc.OutputFile))
	}
	return
}

func ones(n int) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	return
}

func writeCSR(filename string, c mesh.CSR) (err error) {
	var f *os.File
	if f, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return c.Write(f)
}
