// Package dataprocessing turns raw vessel CBM measurement exports into a
// unified dataset. It consolidates decoding, cleaning, timestamp synthesis,
// and multi-source merging into a cohesive package that handles the data
// lifecycle from spreadsheet ingestion to a query-ready record set.
//
// # Architecture
//
// The package is organized into four main components:
//
// 1. Loader: decodes one spreadsheet export and tags it with its vessel
// 2. Cleaner: drops vacuous columns and fills nulls per column kind
// 3. Timestamp synthesizer: derives TIMESTAMP from DATE and TIME
// 4. Merger: concatenates processed sources into the unified dataset
//
// # Usage
//
// Basic per-file processing:
//
//	loader := dataprocessing.NewLoader(nil, nil)
//	rs, vessel, err := loader.Load(content, "Vessel1 CBM_March.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rs = dataprocessing.Process(rs, dataset.DefaultFillPolicy())
//
// Merging sources:
//
//	unified := dataprocessing.Merge([]*dataset.RecordSet{a, b}, policy)
//
// # Data Flow
//
// The typical flow through this package:
//
//	Excel bytes → Loader → RecordSet → Process → sorted RecordSet → Merge → unified dataset
//
// # Error Handling
//
// Decode failures surface as LoadError with the offending filename so a
// batch caller can report per-file failures without aborting the batch.
// An individual row whose DATE/TIME combination fails to parse keeps a
// null timestamp; it is logged, never fatal.
package dataprocessing
