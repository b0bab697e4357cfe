// Copyright © 2024 reachql contributors. All rights reserved.

// Package external implements the collaborators spec.md treats as
// out-of-scope black boxes: a DOT graph reader/writer, a grammar-text
// reader for both of §6's file formats, and a local-cache-backed graph
// catalog. Grounded on the original source's graph_utils.py,
// grammar_utils.py and types.py's from_file/from_data helpers.
package external

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("reachql.external")
}
