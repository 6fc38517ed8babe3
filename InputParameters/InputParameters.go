package InputParameters

import (
	"fmt"

	"github.com/notargets/starcsr/mesh/readers"
	"go.uber.org/zap"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type MeshParameters struct {
	Title            string `yaml:"Title"`
	BaseName         string `yaml:"BaseName"`    // StarCD basename, the .vrt/.cel/.bnd files sit next to it
	IndexOffset      *int   `yaml:"IndexOffset"` // nil leaves the StarCD default of 1
	OffsetBoundaries *bool  `yaml:"OffsetBoundaries"`
	ParallelDegree   int    `yaml:"ParallelDegree"`
	OutputFile       string `yaml:"OutputFile"`
}

func (mp *MeshParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, mp); err != nil {
		return
	}
	if mp.ParallelDegree < 0 {
		return fmt.Errorf("ParallelDegree must not be negative, have %d", mp.ParallelDegree)
	}
	if mp.IndexOffset != nil && *mp.IndexOffset < 0 {
		return fmt.Errorf("IndexOffset must not be negative, have %d", *mp.IndexOffset)
	}
	return
}

// ReaderOptions merges the parameters over the StarCD reader defaults
func (mp *MeshParameters) ReaderOptions(logger *zap.Logger) (opts readers.Options) {
	opts = readers.DefaultOptions()
	if mp.IndexOffset != nil {
		opts.IndexOffset = *mp.IndexOffset
	}
	if mp.OffsetBoundaries != nil {
		opts.OffsetBoundaries = *mp.OffsetBoundaries
	}
	if logger != nil {
		opts.Logger = logger
	}
	return
}

func (mp *MeshParameters) Print() {
	opts := mp.ReaderOptions(nil)
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%s]\t\t= BaseName\n", mp.BaseName)
	fmt.Printf("[%d]\t\t\t\t= Index Offset\n", opts.IndexOffset)
	fmt.Printf("[%v]\t\t\t= Offset Boundaries\n", opts.OffsetBoundaries)
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree\n", mp.ParallelDegree)
	if len(mp.OutputFile) != 0 {
		fmt.Printf("[%s]\t\t= OutputFile\n", mp.OutputFile)
	}
}
