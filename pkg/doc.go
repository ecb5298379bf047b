// Package pkg provides the libraries behind nafig, a tool that plots the
// column names of a table grouped by how much of each column is missing.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [dataset] and [io] - In-memory tables, missingness summaries, CSV/XLSX files
//  2. [bins] - Percentage buckets, empty-bucket removal, consecutive groups
//  3. [hue] and [palette] - Column categories and their colours
//  4. [layout] - Label placement and chart furniture
//  5. [render] - The canvas contract and output sinks
//  6. [pipeline] - Orchestration (load → layout → render) with caching
//
// Supporting packages: [synth] generates example data, [cache] stores
// rendered artifacts, [observability] carries hooks, [errors] defines coded
// errors and [buildinfo] holds version information.
//
// # Architecture
//
//	CSV / XLSX / generated data
//	         ↓
//	    [dataset] (columns + missingness)
//	         ↓
//	    [bins] + [hue] + [palette]
//	         ↓
//	    [layout] (renderer-agnostic chart)
//	         ↓
//	    [render/sink] PNG / SVG / PDF / JSON / terminal
//
// # Quick Start
//
//	ds, _ := io.Import("survey.csv")
//	chart, _ := layout.Compute(ds, layout.Options{NumBins: 10, Remove: bins.RemoveTrailing})
//	png, _ := sink.RenderPNG(chart)
//
// [dataset]: github.com/matzehuels/nafig/pkg/dataset
// [io]: github.com/matzehuels/nafig/pkg/io
// [bins]: github.com/matzehuels/nafig/pkg/bins
// [hue]: github.com/matzehuels/nafig/pkg/hue
// [palette]: github.com/matzehuels/nafig/pkg/palette
// [layout]: github.com/matzehuels/nafig/pkg/layout
// [render]: github.com/matzehuels/nafig/pkg/render
// [render/sink]: github.com/matzehuels/nafig/pkg/render/sink
// [pipeline]: github.com/matzehuels/nafig/pkg/pipeline
// [synth]: github.com/matzehuels/nafig/pkg/synth
// [cache]: github.com/matzehuels/nafig/pkg/cache
// [observability]: github.com/matzehuels/nafig/pkg/observability
// [errors]: github.com/matzehuels/nafig/pkg/errors
// [buildinfo]: github.com/matzehuels/nafig/pkg/buildinfo
package pkg
