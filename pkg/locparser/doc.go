// Package locparser turns loc file content into a locfile.File, choosing the
// parser from the file name and caching results between builds.
//
// A Parser owns its cache. Parsing the same path with the same newline mode
// and byte-identical content returns the stored result without invoking the
// underlying parser; any content change replaces the entry.
//
//	p := locparser.New(locparser.WithLogger(log))
//	file, err := p.Parse(ctx, locparser.Options{
//	    Terminal:             term,
//	    FilePath:             "src/Strings.resx",
//	    Content:              content,
//	    NewlineNormalization: locfile.NewlineCrLf,
//	})
//
// # Formats
//
// Paths ending in ".resx" (any case) are read as RESX documents. Everything
// else is treated as a JSON loc manifest and checked against the loc file
// schema.
//
// # Errors
//
// Malformed XML and invalid JSON syntax are returned as errors and nothing
// is cached. A JSON file that parses but violates the schema is reported as a
// single error line on the terminal and still returned (and cached).
package locparser
