package resx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/terminal"
)

const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

// Options controls a single RESX read.
type Options struct {
	// FilePath is used only to prefix diagnostics.
	FilePath string
	// Terminal receives diagnostics. Nil discards them.
	Terminal terminal.Terminal
	// NewlineNormalization is applied to every <value>.
	NewlineNormalization locfile.NewlineKind
	// WarnOnMissingComment reports <data> entries without a <comment>.
	WarnOnMissingComment bool
}

// ReadFile reads path from disk and parses it with Read. When opts.FilePath
// is empty it is set to path.
func ReadFile(path string, opts Options) (locfile.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedReadFile, err)
	}
	if opts.FilePath == "" {
		opts.FilePath = path
	}
	return Read(string(content), opts)
}

// Read parses RESX content. The returned file is never nil when err is nil.
func Read(content string, opts Options) (locfile.File, error) {
	if opts.Terminal == nil {
		opts.Terminal = terminal.Nop()
	}

	content, err := stripBOM(content)
	if err != nil {
		return nil, errors.Join(ErrMalformedResx, err)
	}

	dec := xml.NewDecoder(strings.NewReader(content))
	// Content is already decoded text; the declared encoding is informational.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	r := &reader{dec: dec, opts: opts}
	file, err := r.readDocument()
	if err != nil {
		return nil, err
	}
	return file, nil
}

// stripBOM drops a leading byte order mark. UTF-16 input carrying a BOM is
// transcoded to UTF-8.
func stripBOM(s string) (string, error) {
	if !strings.HasPrefix(s, "\uFEFF") && !strings.HasPrefix(s, "\xFF\xFE") && !strings.HasPrefix(s, "\xFE\xFF") {
		return s, nil
	}
	out, _, err := transform.String(unicode.BOMOverride(transform.Nop), s)
	return out, err
}

type reader struct {
	dec  *xml.Decoder
	opts Options
}

type position struct {
	line, col int
}

func (r *reader) pos() position {
	line, col := r.dec.InputPos()
	return position{line: line, col: col}
}

func (r *reader) logError(at *position, msg string) {
	r.opts.Terminal.WriteErrorLine(r.format(at, msg))
}

func (r *reader) logWarning(at *position, msg string) {
	r.opts.Terminal.WriteWarningLine(r.format(at, msg))
}

func (r *reader) format(at *position, msg string) string {
	if at == nil {
		return fmt.Sprintf("%s: %s", r.opts.FilePath, msg)
	}
	return fmt.Sprintf("%s(%d,%d): %s", r.opts.FilePath, at.line, at.col, msg)
}

func (r *reader) malformed(err error) error {
	line, col := r.dec.InputPos()
	return fmt.Errorf("%w: %s(%d,%d): %w", ErrMalformedResx, r.opts.FilePath, line, col, err)
}

// next returns the next token or a malformed-document error. io.EOF is
// returned unwrapped.
func (r *reader) next() (xml.Token, error) {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, r.malformed(err)
	}
	return tok, nil
}

func (r *reader) skip() error {
	if err := r.dec.Skip(); err != nil {
		return r.malformed(err)
	}
	return nil
}

func (r *reader) readDocument() (locfile.File, error) {
	file := make(locfile.File)
	for {
		tok, err := r.next()
		if err == io.EOF {
			return nil, r.malformed(errors.New("document has no root element"))
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			at := r.pos()
			if t.Name.Local != "root" || t.Name.Space != "" {
				r.logError(&at, fmt.Sprintf("Expected RESX to have a \"root\" element, found %q", elementName(t.Name)))
				if err := r.skip(); err != nil {
					return nil, err
				}
				return file, r.drain()
			}
			if err := r.readRoot(file); err != nil {
				return nil, err
			}
			return file, r.drain()
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return nil, r.malformed(errors.New("text outside of root element"))
			}
		}
	}
}

// drain consumes trailing tokens so malformed content after the root
// element is still detected.
func (r *reader) drain() error {
	for {
		tok, err := r.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return r.malformed(fmt.Errorf("unexpected element %q after root element", elementName(t.Name)))
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return r.malformed(errors.New("text after root element"))
			}
		}
	}
}

func (r *reader) readRoot(file locfile.File) error {
	for {
		tok, err := r.next()
		if err != nil {
			if err == io.EOF {
				return r.malformed(io.ErrUnexpectedEOF)
			}
			return err
		}

		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			at := r.pos()
			switch name := elementName(t.Name); name {
			case "data":
				if err := r.readData(file, t, at); err != nil {
					return err
				}
			case "xsd:schema", "resheader":
				if err := r.skip(); err != nil {
					return err
				}
			default:
				r.logError(&at, "Unexpected RESX element "+name)
				if err := r.skip(); err != nil {
					return err
				}
			}
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				at := r.pos()
				r.logError(&at, "Found unexpected non-empty text node in RESX")
			}
		case xml.Comment:
		default:
			at := r.pos()
			r.logError(&at, fmt.Sprintf("Unexpected %s child in RESX", tokenKind(tok)))
		}
	}
}

func (r *reader) readData(file locfile.File, el xml.StartElement, at position) error {
	name := attr(el, "name")

	var (
		value, comment           string
		hasValue, hasComment     bool
		foundValue, foundComment bool
	)

loop:
	for {
		tok, err := r.next()
		if err != nil {
			if err == io.EOF {
				return r.malformed(io.ErrUnexpectedEOF)
			}
			return err
		}

		switch t := tok.(type) {
		case xml.EndElement:
			break loop
		case xml.StartElement:
			childAt := r.pos()
			switch child := elementName(t.Name); child {
			case "value":
				if foundValue {
					r.logError(&childAt, "Duplicate <value> element found")
					if err := r.skip(); err != nil {
						return err
					}
					continue
				}
				foundValue = true
				text, ok, err := r.readText(childAt)
				if err != nil {
					return err
				}
				value, hasValue = text, ok
			case "comment":
				if foundComment {
					r.logError(&childAt, "Duplicate <comment> element found")
					if err := r.skip(); err != nil {
						return err
					}
					continue
				}
				foundComment = true
				text, ok, err := r.readText(childAt)
				if err != nil {
					return err
				}
				comment, hasComment = text, ok
			default:
				r.logError(&childAt, "Unexpected RESX element "+child)
				if err := r.skip(); err != nil {
					return err
				}
			}
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				childAt := r.pos()
				r.logError(&childAt, "Found unexpected non-empty text node in RESX <data> element")
			}
		case xml.Comment:
		default:
			childAt := r.pos()
			r.logError(&childAt, fmt.Sprintf("Unexpected %s child in RESX <data> element", tokenKind(tok)))
		}
	}

	if name == "" {
		r.logError(&at, "Unexpected missing or empty string name")
		return nil
	}
	if _, exists := file[name]; exists {
		r.logError(&at, fmt.Sprintf("Duplicate string value %q", name))
	}

	if !foundValue {
		r.logError(&at, "Missing string value in <data> element")
		return nil
	}
	if !hasComment && r.opts.WarnOnMissingComment {
		r.logWarning(&at, "Missing string comment in <data> element")
	}
	if hasValue {
		value = r.opts.NewlineNormalization.Normalize(value)
	}

	file[name] = locfile.LocalizedString{Value: value, Comment: comment}
	return nil
}

// readText reads the body of a <value> or <comment> element. The element must
// hold at most one text or CDATA node; ok is false when it holds none or the
// body is invalid.
func (r *reader) readText(at position) (string, bool, error) {
	var text string
	nodes := 0
	invalid := false

	for {
		tok, err := r.next()
		if err != nil {
			if err == io.EOF {
				return "", false, r.malformed(io.ErrUnexpectedEOF)
			}
			return "", false, err
		}

		switch t := tok.(type) {
		case xml.EndElement:
			if invalid || nodes == 0 {
				return "", false, nil
			}
			return text, true, nil
		case xml.CharData:
			nodes++
			if nodes > 1 {
				if !invalid {
					r.logError(&at, "More than one child node found in text element")
				}
				invalid = true
				continue
			}
			text = string(t)
		case xml.StartElement:
			childAt := r.pos()
			r.logError(&childAt, "Unexpected element "+elementName(t.Name))
			if err := r.skip(); err != nil {
				return "", false, err
			}
		case xml.Comment:
		default:
			childAt := r.pos()
			r.logError(&childAt, fmt.Sprintf("Unexpected %s child", tokenKind(tok)))
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// elementName renders a resolved name with its conventional prefix.
func elementName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case xsdNamespace, "xsd":
		return "xsd:" + n.Local
	default:
		return n.Space + ":" + n.Local
	}
}

func tokenKind(tok xml.Token) string {
	switch tok.(type) {
	case xml.ProcInst:
		return "processing instruction"
	case xml.Directive:
		return "directive"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
