// Package dataprocessing turns raw car listings into typed records and derives
// the filtered views and chart data the dashboard shows.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads CSV or Excel datasets into raw records (parser.go)
// 2. Transformer: parses numeric fields and normalizes categories (processor.go)
// 3. Filter: applies brand, price, fuel and body type constraints (filter.go)
// 4. Engine: runs the aggregation reducers behind a result cache (engine.go)
//
// # Usage
//
//	rows, err := dataprocessing.LoadFile("cars.csv", "")
//	if err != nil {
//	    return err
//	}
//	cars := dataprocessing.ProcessCarData(rows)
//	view := dataprocessing.FilterCarData(cars, domain.DefaultFilter())
//
//	engine := dataprocessing.NewEngine(dataprocessing.DefaultEngineConfig(), logger)
//	summary := engine.Summarize(dataprocessing.NewSet(view))
//
// # Data Flow
//
//	File → Loader → RawRecords → Transformer → Cars → Filter → Engine → Summary
//
// # Error Handling
//
// Field parsing never fails: unparseable numbers become 0 and unknown
// categories pass through unchanged. Rows without a positive price are
// dropped. Only loading can fail, and it fails for the whole file.
package dataprocessing
