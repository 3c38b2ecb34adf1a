// Package domain models the messages exchanged by the colourbar precompute
// pipeline.
//
// # Range summaries
//
// The raster ingestion job publishes one [RangeSummary] per dataset to the
// source topic whenever it loads a design value raster. A dataset is a design
// value in a climate regime, plus a warming level for the future regime:
//
//	{"design_value":"SL50","regime":"future","warming_level":"2.0",
//	 "min":0.82,"max":1.41,"source":"SL50_future_2.0.nc","computed_at":"2024-05-01T12:00:00Z"}
//
// Regime names are case-insensitive. Historical summaries carry no warming
// level. The range is the finite data extent of the raster, so min must be
// strictly below max.
//
// # Colourbar messages
//
// For every accepted summary the pipeline publishes a [ColourbarMessage] with
// the default colourbar of that dataset. Messages are keyed by
// "<design_value>/<regime>[/<warming_level>]" so that a compacted sink topic
// keeps the latest colourbar per dataset.
package domain
