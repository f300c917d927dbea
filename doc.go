// Package evidencepdf composes labeled evidence documents as A4 PDFs.
//
// # Quick Start
//
// Create a converter and convert a set of scans:
//
//	conv, err := evidencepdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := conv.Convert(ctx, evidencepdf.Input{
//	    Paths: []string{"scan1.jpg", "scan2.png"},
//	    Label: "原證1",
//	})
//
// Every image becomes one A4 page: landscape images are turned 90 degrees
// counter-clockwise, then scaled down (never up) to fit inside the margins
// and centered. The first page carries a bordered label box in its top-right
// corner with the label stacked vertically, one character per line and runs
// of digits kept together ("原", "證", "1").
//
// A request holding only PDF documents stamps the label onto page 1 of the
// first document and keeps every other page untouched.
//
// # Labels and Fonts
//
// Labels are drawn with a TrueType font looked up in this order: fonts given
// with WithFontData and WithFontPaths, the EVIDENCEPDF_FONT environment
// variable, kaiu.ttf next to the executable, kaiu.ttf in the working
// directory. When none loads, Helvetica is used and FontWarning reports a
// *FontResolutionWarning. Helvetica has no CJK glyphs.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := evidencepdf.NewConverter(
//	    evidencepdf.WithLogger(logger),
//	    evidencepdf.WithFontPaths("/usr/share/fonts/kaiu.ttf"),
//	    evidencepdf.WithStrictInputs(),
//	)
//
// # Batch Processing
//
// BatchManager runs many jobs and records each outcome on the job:
//
//	batch := evidencepdf.NewBatchManager(conv, evidencepdf.WithWorkers(4))
//	batch.AddJob("原證1", []string{"a.jpg"}, "原證1", "out")
//	batch.AddJob("原證2", []string{"contract.pdf"}, "原證2", "out")
//	results := batch.ProcessAllJobs(ctx, nil)
//	fmt.Print(batch.SummaryReport())
//
// Job outputs are named <outputDir>/<id>.pdf. A failed job never stops the
// others.
package evidencepdf
