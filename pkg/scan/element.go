package scan

import "strings"

// scanElement consumes one markup tag starting at '<'. It emits a
// KindElement unit carrying the attribute list, one unit per notable
// attribute, and re-scans expression-valued attributes so closures and
// reads inside them surface as their own units.
func (s *scanner) scanElement() {
	start := s.pos
	i := s.pos + 1

	nameStart := i
	for i < len(s.src) && (isIdentPart(s.src[i]) || s.src[i] == '-' || s.src[i] == ':') {
		i++
	}
	name := string(s.src[nameStart:i])

	var attrs []Attr
	var exprValues []Span

	done := false
	for !done && i < len(s.src) {
		c := s.src[i]
		switch {
		case isSpace(c):
			i++
		case c == '/' && s.peekAt(i+1) == '>':
			i += 2
			done = true
		case c == '>':
			i++
			done = true
		case c == '<':
			// Malformed tag. Leave the byte for the main loop.
			done = true
		case isIdentStart(c):
			var attr Attr
			attr, i = s.scanAttr(i, &exprValues)
			attrs = append(attrs, attr)
		case c == '{':
			// Shorthand or spread braces inside the tag.
			end := s.matchBraced(i)
			exprValues = append(exprValues, Span{Start: i + 1, End: end})
			if end < len(s.src) {
				end++
			}
			i = end
		default:
			i++
		}
	}

	ctx := s.context()
	s.emit(Unit{
		Kind:  KindElement,
		Span:  Span{Start: start, End: i},
		Name:  name,
		Attrs: attrs,
	}, ctx)

	for _, a := range attrs {
		switch {
		case strings.HasPrefix(a.Name, "on:"):
			s.emit(Unit{Kind: KindEventHandler, Span: a.Span, Name: a.Name}, ctx)
		case a.Name == "inner_html":
			s.emit(Unit{Kind: KindRawHTML, Span: a.Span, Name: a.Name}, ctx)
		case !a.ValueSpan.IsEmpty():
			s.emit(Unit{Kind: KindAttributeBinding, Span: a.Span, Name: a.Name}, ctx)
		}
	}

	// Attribute values hold real expressions. Scan them under view and
	// attribute context so the units inside keep their surroundings.
	for _, span := range exprValues {
		if span.IsEmpty() {
			continue
		}
		sub := newScanner(s.src[span.Start:span.End], s.base+span.Start, unitContext{
			inView:      true,
			inAttribute: true,
		})
		sub.run()
		s.units = append(s.units, sub.units...)
	}

	s.pos = i
}

// scanAttr parses one attribute starting at an identifier byte. Records
// expression value spans for the caller to re-scan.
func (s *scanner) scanAttr(i int, exprValues *[]Span) (Attr, int) {
	nameStart := i
	for i < len(s.src) && (isIdentPart(s.src[i]) || s.src[i] == ':' || s.src[i] == '-' || s.src[i] == '.') {
		i++
	}
	attr := Attr{
		Name: string(s.src[nameStart:i]),
		Span: Span{Start: nameStart, End: i},
	}

	c, j := s.peekNonSpace(i)
	if c != '=' {
		return attr, i // bare attribute such as disabled or autofocus
	}

	vStart, vEnd, next, isExpr := s.scanAttrValue(j + 1)
	attr.ValueSpan = Span{Start: vStart, End: vEnd}
	attr.Value = strings.TrimSpace(string(s.src[vStart:vEnd]))
	attr.Span.End = next
	if isExpr {
		*exprValues = append(*exprValues, attr.ValueSpan)
	}
	return attr, next
}

// scanAttrValue consumes an attribute value. Returns the content span,
// the offset to resume scanning at, and whether the content is an
// expression rather than a literal.
func (s *scanner) scanAttrValue(i int) (int, int, int, bool) {
	c, i := s.peekNonSpace(i)
	switch c {
	case 0:
		return len(s.src), len(s.src), len(s.src), false
	case '"':
		end := s.stringEnd(i)
		vEnd := end
		if vEnd > i+1 {
			vEnd--
		}
		return i + 1, vEnd, end, false
	case '{':
		end := s.matchBraced(i)
		next := end
		if next < len(s.src) {
			next++
		}
		return i + 1, end, next, true
	default:
		end := s.bareExprEnd(i)
		return i, end, end, true
	}
}

// matchBraced returns the offset of the brace closing the one at i.
// Unclosed braces run to end of input.
func (s *scanner) matchBraced(i int) int {
	depth := 0
	for i < len(s.src) {
		if j := s.inertEnd(i); j > i {
			i = j
			continue
		}
		switch s.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return len(s.src)
}

// bareExprEnd finds the end of an unbraced attribute expression such as
// on:click=move |_| set_count(3). The expression runs until the tag
// closes or the next attribute begins.
func (s *scanner) bareExprEnd(i int) int {
	depth := 0
	for i < len(s.src) {
		if j := s.inertEnd(i); j > i {
			i = j
			continue
		}
		c := s.src[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return i
			}
			depth--
		case '>':
			if depth == 0 && i > 0 && s.src[i-1] != '-' && s.src[i-1] != '=' {
				return i
			}
		case '/':
			if depth == 0 && s.peekAt(i+1) == '>' {
				return i
			}
		case ',':
			if depth == 0 {
				return i
			}
		case ' ', '\t', '\r', '\n':
			if depth == 0 && s.valueEndsAt(i) {
				return i
			}
		}
		i++
	}
	return len(s.src)
}

// valueEndsAt reports whether whitespace at i separates a bare value
// from the next attribute or the tag close.
func (s *scanner) valueEndsAt(i int) bool {
	c, j := s.peekNonSpace(i)
	switch c {
	case '>', 0:
		return true
	case '/':
		return s.peekAt(j+1) == '>'
	}
	if !isIdentStart(c) {
		return false
	}
	for j < len(s.src) && (isIdentPart(s.src[j]) || s.src[j] == ':' || s.src[j] == '-' || s.src[j] == '.') {
		j++
	}
	c2, k := s.peekNonSpace(j)
	if c2 == '=' {
		return true // next attribute
	}
	if c2 == '>' || (c2 == '/' && s.peekAt(k+1) == '>') {
		return true // trailing bare attribute then tag close
	}
	return false
}
