// Package resx reads .NET RESX resource documents into a locfile.File.
//
// Only the subset of RESX used for string tables is understood: a <root>
// element holding <data name="..."> entries, each with a <value> and an
// optional <comment>. <xsd:schema> and <resheader> blocks are skipped.
//
// Structural problems (unexpected elements, duplicate names, a <data> without
// a <value>) are reported to the configured terminal.Terminal as
// "<path>(<line>,<col>): <message>" lines and parsing continues. Only
// malformed XML aborts the read, with an error wrapping ErrMalformedResx:
//
//	file, err := resx.Read(content, resx.Options{
//	    FilePath:             "Strings.resx",
//	    Terminal:             term,
//	    NewlineNormalization: locfile.NewlineCrLf,
//	    WarnOnMissingComment: true,
//	})
package resx
