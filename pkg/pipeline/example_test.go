package pipeline_test

import (
	"fmt"

	"github.com/matzehuels/nafig/pkg/pipeline"
)

func ExampleParseFormats() {
	fmt.Println(pipeline.ParseFormats("png, SVG,png,,json"))
	// Output: [png svg json]
}

func ExampleDefaultOptions() {
	opts := pipeline.DefaultOptions()
	fmt.Println(opts.NumBins, opts.Remove, opts.TitleAlign, opts.Formats)
	// Output: 10 none center [png]
}
