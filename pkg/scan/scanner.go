package scan

import "strings"

// unitContext is the ambient context a unit is emitted under. Nested
// scans (attribute values) seed it from the enclosing scan.
type unitContext struct {
	inView      bool
	inClosure   bool
	closureMove bool
	inAttribute bool
}

// delimFrame is one entry of the open-delimiter stack.
type delimFrame struct {
	kind        byte // '(', '[' or '{'
	offset      int
	view        bool // '{' opening a view! region
	closureBody int  // index into closures when this brace is a closure body, else -1
}

// closureFrame tracks one closure whose end has not been seen yet.
type closureFrame struct {
	start     int
	bodyStart int
	hasMove   bool
	braced    bool
	depth     int // delimiter depth at closure start
	ctx       unitContext
}

// captureKind selects what a finished call capture turns into.
type captureKind int

const (
	captureRead captureKind = iota
	captureResource
)

// callCapture tracks an open call whose argument spans matter.
type callCapture struct {
	kind     captureKind
	frame    int // delimiter stack index of the call's open paren
	start    int
	name     string
	receiver string
	argStart int
	commas   []int
	ctx      unitContext
}

// fn tracker states.
const (
	fnNone = iota
	fnWantName
	fnAfterName
	fnInParams
	fnAfterParams
)

// fnTracker accumulates one function signature across main-loop steps.
type fnTracker struct {
	state       int
	start       int
	name        string
	paramsFrame int
	params      Span
	retStart    int
	attrs       []string
}

type scanner struct {
	src  []byte
	base int
	ctx  unitContext

	pos   int
	units []Unit

	delims   []delimFrame
	closures []closureFrame
	captures []callCapture
	fn       fnTracker

	viewDepth int

	pendingAttrs   []string
	pendingMove    bool
	moveStart      int
	pendingView    bool
	pendingCapture *callCapture
	pendingBrace   int // closure index waiting for a braced body, -1 when none

	lastIdent    string
	lastIdentEnd int

	opaqueFrom int
}

// readMethods are the signal access methods recognized as reactive reads.
var readMethods = map[string]bool{
	"get":            true,
	"get_untracked":  true,
	"read":           true,
	"read_untracked": true,
	"with":           true,
	"with_untracked": true,
}

// printMacros are console output macros flagged in UI code.
var printMacros = map[string]bool{
	"println":  true,
	"eprintln": true,
	"print":    true,
	"eprint":   true,
	"dbg":      true,
}

// deprecatedCalls are constructor idents recorded for API checks.
var deprecatedCalls = map[string]bool{
	"create_signal":         true,
	"create_rw_signal":      true,
	"create_memo":           true,
	"create_effect":         true,
	"create_resource":       true,
	"create_local_resource": true,
}

func newScanner(src []byte, base int, ctx unitContext) *scanner {
	return &scanner{
		src:          src,
		base:         base,
		ctx:          ctx,
		fn:           fnTracker{state: fnNone},
		pendingBrace: -1,
		opaqueFrom:   -1,
	}
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		if isSpace(c) {
			s.pos++
			continue
		}

		// One-token flags only survive whitespace and comments.
		if c != '/' {
			if c != '(' {
				s.pendingCapture = nil
			}
			if c != '|' {
				s.pendingMove = false
			}
			if c != '{' {
				s.pendingView = false
				s.pendingBrace = -1
			}
		}

		switch {
		case c == '/' && s.peekAt(s.pos+1) == '/':
			s.pos = s.lineCommentEnd(s.pos)
		case c == '/' && s.peekAt(s.pos+1) == '*':
			s.pos = s.blockCommentEnd(s.pos)
		case c == '"':
			s.pos = s.stringEnd(s.pos)
		case c == '\'':
			s.pos = s.charOrLifetimeEnd(s.pos)
		case c == 'r' && s.rawStringAhead(s.pos):
			s.pos = s.rawStringEnd(s.pos)
		case c == 'b' && s.byteLiteralAhead():
			s.pos = s.byteLiteralEnd(s.pos)
		case c == '#':
			s.scanMacroAttribute()
		case c == '(' || c == '[' || c == '{':
			s.pushDelim(c)
		case c == ')' || c == ']' || c == '}':
			if !s.popDelim(c) {
				return
			}
		case c == '<':
			s.handleAngle()
		case c == '|':
			s.handlePipe()
		case c == ',':
			s.handleComma()
		case c == ';':
			s.handleSemi()
		case c == '.':
			s.handleDot()
		case isIdentStart(c):
			s.scanIdent()
		default:
			s.pos++
		}
	}

	s.finishAtEOF()
}

// context returns the ambient flags at the current scan position,
// merged with the base context of nested scans.
func (s *scanner) context() unitContext {
	ctx := unitContext{
		inView:      s.ctx.inView || s.viewDepth > 0,
		inAttribute: s.ctx.inAttribute,
	}
	if n := len(s.closures); n > 0 {
		ctx.inClosure = true
		ctx.closureMove = s.closures[n-1].hasMove
	} else if s.ctx.inClosure {
		ctx.inClosure = true
		ctx.closureMove = s.ctx.closureMove
	}
	return ctx
}

// emit appends a unit, resolving its text and shifting spans into
// absolute offsets for nested scans.
func (s *scanner) emit(u Unit, ctx unitContext) {
	u.Text = s.slice(u.Span)
	u.InView = ctx.inView
	u.InClosure = ctx.inClosure
	u.ClosureHasMove = ctx.closureMove
	u.InAttribute = ctx.inAttribute

	u.Span = s.shift(u.Span)
	u.FetcherSpan = s.shift(u.FetcherSpan)
	if len(u.Attrs) > 0 {
		// Copy before shifting: the caller may emit further units off
		// the same attribute slice.
		attrs := make([]Attr, len(u.Attrs))
		copy(attrs, u.Attrs)
		for i := range attrs {
			attrs[i].Span = s.shift(attrs[i].Span)
			attrs[i].ValueSpan = s.shift(attrs[i].ValueSpan)
		}
		u.Attrs = attrs
	}

	s.units = append(s.units, u)
}

func (s *scanner) shift(span Span) Span {
	if span.IsEmpty() && span.Start == 0 {
		return span
	}
	return Span{Start: span.Start + s.base, End: span.End + s.base}
}

func (s *scanner) slice(span Span) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(s.src) {
		end = len(s.src)
	}
	if start >= end {
		return ""
	}
	return string(s.src[start:end])
}

func (s *scanner) peekAt(i int) byte {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// peekNonSpace returns the next non-whitespace byte at or after i.
func (s *scanner) peekNonSpace(i int) (byte, int) {
	for ; i < len(s.src); i++ {
		if !isSpace(s.src[i]) {
			return s.src[i], i
		}
	}
	return 0, len(s.src)
}

// prevMeaningful returns the last non-whitespace byte before pos.
func (s *scanner) prevMeaningful() byte {
	b, _ := s.prevMeaningfulIdx()
	return b
}

func (s *scanner) prevMeaningfulIdx() (byte, int) {
	for i := s.pos - 1; i >= 0; i-- {
		if !isSpace(s.src[i]) {
			return s.src[i], i
		}
	}
	return 0, -1
}

func (s *scanner) lineCommentEnd(i int) int {
	for i < len(s.src) && s.src[i] != '\n' {
		i++
	}
	return i
}

func (s *scanner) blockCommentEnd(i int) int {
	i += 2
	depth := 1
	for i < len(s.src) && depth > 0 {
		if s.src[i] == '/' && s.peekAt(i+1) == '*' {
			depth++
			i += 2
			continue
		}
		if s.src[i] == '*' && s.peekAt(i+1) == '/' {
			depth--
			i += 2
			continue
		}
		i++
	}
	return i
}

func (s *scanner) stringEnd(i int) int {
	i++ // opening quote
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

// charOrLifetimeEnd distinguishes 'a lifetimes from 'x' literals.
func (s *scanner) charOrLifetimeEnd(i int) int {
	next := s.peekAt(i + 1)
	if isIdentStart(next) && s.peekAt(i+2) != '\'' {
		// Lifetime: consume the quote and the identifier.
		i += 2
		for i < len(s.src) && isIdentPart(s.src[i]) {
			i++
		}
		return i
	}

	// Char literal. A stray quote with no close on the same line is
	// consumed alone.
	j := i + 1
	for j < len(s.src) && s.src[j] != '\n' {
		if s.src[j] == '\\' {
			j += 2
			continue
		}
		if s.src[j] == '\'' {
			return j + 1
		}
		j++
	}
	return i + 1
}

// rawStringAhead reports whether pos starts a raw string literal
// (r"..." or r#"..."#).
func (s *scanner) rawStringAhead(pos int) bool {
	i := pos + 1
	for i < len(s.src) && s.src[i] == '#' {
		i++
	}
	return i < len(s.src) && s.src[i] == '"' && (i > pos+1 || s.peekAt(pos+1) == '"')
}

func (s *scanner) rawStringEnd(pos int) int {
	i := pos + 1
	hashes := 0
	for i < len(s.src) && s.src[i] == '#' {
		hashes++
		i++
	}
	i++ // opening quote
	for i < len(s.src) {
		if s.src[i] == '"' {
			j := i + 1
			n := 0
			for j < len(s.src) && s.src[j] == '#' && n < hashes {
				n++
				j++
			}
			if n == hashes {
				return j
			}
		}
		i++
	}
	return len(s.src)
}

func (s *scanner) byteLiteralAhead() bool {
	next := s.peekAt(s.pos + 1)
	return next == '"' || next == '\'' || (next == 'r' && s.rawStringAhead(s.pos+1))
}

func (s *scanner) byteLiteralEnd(i int) int {
	switch s.peekAt(i + 1) {
	case '"':
		return s.stringEnd(i + 1)
	case '\'':
		return s.charOrLifetimeEnd(i + 1)
	default:
		return s.rawStringEnd(i + 1)
	}
}

// inertEnd returns the end of the string, char, or comment token
// starting at i, or i itself when the byte starts none.
func (s *scanner) inertEnd(i int) int {
	switch c := s.src[i]; {
	case c == '"':
		return s.stringEnd(i)
	case c == '\'':
		return s.charOrLifetimeEnd(i)
	case c == '/' && s.peekAt(i+1) == '/':
		return s.lineCommentEnd(i)
	case c == '/' && s.peekAt(i+1) == '*':
		return s.blockCommentEnd(i)
	case c == 'r' && s.rawStringAhead(i):
		return s.rawStringEnd(i)
	}
	return i
}

// scanMacroAttribute consumes #[...] and #![...] attribute macros and
// records the leading identifier of outer attributes.
func (s *scanner) scanMacroAttribute() {
	i := s.pos + 1
	inner := false
	if s.peekAt(i) == '!' {
		inner = true
		i++
	}
	if s.peekAt(i) != '[' {
		s.pos++
		return
	}
	i++

	nameStart := -1
	nameEnd := -1
	depth := 1
	for i < len(s.src) && depth > 0 {
		c := s.src[i]
		switch {
		case c == '"':
			// Skip string content inside the attribute.
			i++
			for i < len(s.src) && s.src[i] != '"' {
				if s.src[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case c == '[':
			depth++
			i++
		case c == ']':
			depth--
			i++
		default:
			if nameStart < 0 && isIdentStart(c) {
				nameStart = i
				for i < len(s.src) && isIdentPart(s.src[i]) {
					i++
				}
				nameEnd = i
				continue
			}
			i++
		}
	}

	s.pos = i

	if !inner && nameStart >= 0 {
		s.pendingAttrs = append(s.pendingAttrs, string(s.src[nameStart:nameEnd]))
	}
}

func (s *scanner) pushDelim(c byte) {
	frame := delimFrame{kind: c, offset: s.pos, closureBody: -1}

	switch c {
	case '{':
		switch {
		case s.pendingView:
			frame.view = true
			s.viewDepth++
			s.pendingView = false
		case s.pendingBrace >= 0:
			frame.closureBody = s.pendingBrace
			s.closures[s.pendingBrace].braced = true
			s.closures[s.pendingBrace].bodyStart = s.pos
			s.pendingBrace = -1
		case s.fn.state == fnAfterParams:
			s.emitFnDecl(s.pos)
		}
	case '(':
		if s.pendingCapture != nil {
			cc := *s.pendingCapture
			cc.frame = len(s.delims)
			cc.argStart = s.pos + 1
			s.captures = append(s.captures, cc)
			s.pendingCapture = nil
		}
		if s.fn.state == fnAfterName {
			s.fn.state = fnInParams
			s.fn.paramsFrame = len(s.delims)
			s.fn.params.Start = s.pos + 1
		}
	}

	s.delims = append(s.delims, frame)
	s.pos++
}

// popDelim closes the innermost frame. A mismatched closer degrades the
// remainder of the input to a single opaque unit and stops the scan.
func (s *scanner) popDelim(c byte) bool {
	if len(s.delims) == 0 || !matches(s.delims[len(s.delims)-1].kind, c) {
		s.degradeToOpaque()
		return false
	}

	idx := len(s.delims) - 1
	frame := s.delims[idx]
	s.delims = s.delims[:idx]

	if frame.view {
		s.viewDepth--
	}

	// Close captures anchored on this frame.
	for len(s.captures) > 0 && s.captures[len(s.captures)-1].frame >= idx {
		cc := s.captures[len(s.captures)-1]
		s.captures = s.captures[:len(s.captures)-1]
		s.finishCapture(cc, s.pos+1)
	}

	// Close the braced closure whose body just ended.
	if frame.closureBody >= 0 && frame.closureBody < len(s.closures) {
		s.endClosuresFrom(frame.closureBody, s.pos+1)
	}

	// Close non-braced closures that lived inside this frame.
	for len(s.closures) > 0 {
		top := s.closures[len(s.closures)-1]
		if !top.braced && top.depth > len(s.delims) {
			s.endClosuresFrom(len(s.closures)-1, s.pos)
			continue
		}
		break
	}

	if s.fn.state == fnInParams && idx == s.fn.paramsFrame {
		s.fn.params.End = s.pos
		s.fn.state = fnAfterParams
		s.fn.retStart = s.pos + 1
	}

	s.pos++
	return true
}

func matches(open, close byte) bool {
	switch open {
	case '(':
		return close == ')'
	case '[':
		return close == ']'
	case '{':
		return close == '}'
	default:
		return false
	}
}

// degradeToOpaque marks the remainder of the input as a single opaque
// unit. Structural inference stops here; units found so far stand.
func (s *scanner) degradeToOpaque() {
	s.opaqueFrom = s.base + s.pos
	s.emit(Unit{
		Kind: KindOpaque,
		Span: Span{Start: s.pos, End: len(s.src)},
	}, s.context())
	s.pos = len(s.src)
}

// endClosuresFrom emits and removes closures[idx:] ending at end.
// Inner closures close together with their enclosing one.
func (s *scanner) endClosuresFrom(idx, end int) {
	for i := len(s.closures) - 1; i >= idx; i-- {
		cl := s.closures[i]
		if end < cl.start {
			end = cl.start
		}
		s.emit(Unit{
			Kind:    KindClosure,
			Span:    Span{Start: cl.start, End: end},
			HasMove: cl.hasMove,
		}, cl.ctx)
	}
	s.closures = s.closures[:idx]
}

// finishCapture turns a completed call capture into its unit.
func (s *scanner) finishCapture(cc callCapture, end int) {
	switch cc.kind {
	case captureRead:
		s.emit(Unit{
			Kind:     KindReactiveRead,
			Span:     Span{Start: cc.start, End: end},
			Name:     cc.name,
			Receiver: cc.receiver,
		}, cc.ctx)

	case captureResource:
		u := Unit{
			Kind: KindResource,
			Span: Span{Start: cc.start, End: end},
			Name: cc.name,
		}
		argEnd := end - 1
		if argEnd < cc.argStart {
			argEnd = cc.argStart
		}
		if len(cc.commas) == 0 {
			u.SourceText = strings.TrimSpace(s.slice(Span{Start: cc.argStart, End: argEnd}))
		} else {
			firstComma := cc.commas[0]
			u.SourceText = strings.TrimSpace(s.slice(Span{Start: cc.argStart, End: firstComma}))
			fetcherEnd := argEnd
			if len(cc.commas) > 1 {
				fetcherEnd = cc.commas[1]
			}
			u.FetcherSpan = Span{Start: firstComma + 1, End: fetcherEnd}
			u.FetcherText = strings.TrimSpace(s.slice(u.FetcherSpan))
		}
		s.emit(u, cc.ctx)
	}
}

func (s *scanner) handlePipe() {
	if s.peekAt(s.pos+1) == '|' {
		if s.pendingMove || s.exprPosition() {
			s.startClosure(s.pos, s.pos+2)
			s.pos += 2
			s.armBracedBody()
			return
		}
		s.pos += 2 // logical or
		return
	}

	if !s.pendingMove && !s.exprPosition() {
		s.pos++ // bitwise or / or-pattern
		return
	}

	// Single pipe opening a parameter list: find its closing pipe.
	closing := -1
	for i := s.pos + 1; i < len(s.src); i++ {
		if s.src[i] == '|' {
			closing = i
			break
		}
		if s.src[i] == '{' || s.src[i] == ';' {
			break
		}
	}
	if closing < 0 {
		s.pos++
		return
	}

	s.startClosure(s.pos, closing+1)
	s.pos = closing + 1
	s.armBracedBody()
}

func (s *scanner) startClosure(pipeStart, bodyStart int) {
	start := pipeStart
	if s.pendingMove {
		start = s.moveStart
	}
	s.closures = append(s.closures, closureFrame{
		start:     start,
		bodyStart: bodyStart,
		hasMove:   s.pendingMove,
		depth:     len(s.delims),
		ctx:       s.context(),
	})
	s.pendingMove = false
}

// armBracedBody marks the newest closure as waiting for a braced body
// when the next meaningful byte opens a brace.
func (s *scanner) armBracedBody() {
	if c, _ := s.peekNonSpace(s.pos); c == '{' {
		s.pendingBrace = len(s.closures) - 1
	}
}

// exprPosition guesses whether the current position is an expression
// position, where a pipe starts a closure rather than an operator.
func (s *scanner) exprPosition() bool {
	prev, idx := s.prevMeaningfulIdx()
	switch prev {
	case 0, '(', '[', '{', ',', '=', ':', ';':
		return true
	case '>':
		// A match arm arrow introduces an expression.
		return idx > 0 && s.src[idx-1] == '='
	}
	if isIdentPart(prev) {
		switch s.lastIdent {
		case "return", "else", "match", "if", "while", "in", "move":
			return true
		}
	}
	return false
}

func (s *scanner) handleComma() {
	// Record argument boundaries for the innermost open capture.
	if n := len(s.captures); n > 0 && s.captures[n-1].frame == len(s.delims)-1 {
		s.captures[n-1].commas = append(s.captures[n-1].commas, s.pos)
	}

	// A comma at closure depth ends a non-braced closure body.
	for len(s.closures) > 0 {
		top := s.closures[len(s.closures)-1]
		if !top.braced && top.depth == len(s.delims) {
			s.endClosuresFrom(len(s.closures)-1, s.pos)
			continue
		}
		break
	}

	s.pos++
}

func (s *scanner) handleSemi() {
	for len(s.closures) > 0 {
		top := s.closures[len(s.closures)-1]
		if !top.braced && top.depth == len(s.delims) {
			s.endClosuresFrom(len(s.closures)-1, s.pos)
			continue
		}
		break
	}

	// fn declaration without a body (trait signatures).
	if s.fn.state == fnAfterParams {
		s.emitFnDecl(s.pos)
	} else if s.fn.state != fnNone {
		s.fn = fnTracker{state: fnNone}
	}

	s.pos++
}

// handleDot recognizes reactive read methods and raw HTML setters.
func (s *scanner) handleDot() {
	i := s.pos + 1
	if i >= len(s.src) || !isIdentStart(s.src[i]) {
		s.pos++
		return
	}

	end := i
	for end < len(s.src) && isIdentPart(s.src[end]) {
		end++
	}
	method := string(s.src[i:end])

	next, _ := s.peekNonSpace(end)
	if next != '(' {
		s.pos++
		return
	}

	switch {
	case readMethods[method]:
		start := s.pos
		receiver := ""
		if s.lastIdentEnd == s.pos && s.lastIdent != "" {
			receiver = s.lastIdent
			start = s.pos - len(s.lastIdent)
		}
		s.pendingCapture = &callCapture{
			kind:     captureRead,
			start:    start,
			name:     method,
			receiver: receiver,
			ctx:      s.context(),
		}
		s.pos = end

	case method == "inner_html" || method == "set_inner_html":
		s.emit(Unit{
			Kind: KindRawHTML,
			Span: Span{Start: s.pos, End: end},
			Name: "inner_html",
		}, s.context())
		s.pos = end

	default:
		// Keep receiver tracking alive across chains like a.b.get().
		s.lastIdent = method
		s.lastIdentEnd = end
		s.pos = end
	}
}

func (s *scanner) scanIdent() {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	word := string(s.src[start:s.pos])

	defer func() {
		s.lastIdent = word
		s.lastIdentEnd = start + len(word)
	}()

	// Function signature tracking.
	if s.fn.state == fnWantName {
		s.fn.name = word
		s.fn.state = fnAfterName
		s.skipGenerics()
		return
	}

	switch word {
	case "fn":
		s.fn = fnTracker{
			state: fnWantName,
			start: start,
			attrs: s.pendingAttrs,
		}
		s.pendingAttrs = nil
		return

	case "move":
		s.pendingMove = true
		s.moveStart = start
		return

	case "view":
		if c, i := s.peekNonSpace(s.pos); c == '!' {
			if c2, _ := s.peekNonSpace(i + 1); c2 == '{' {
				s.pendingView = true
				s.pos = i + 1
			}
		}
		return

	case "struct", "enum", "impl", "trait", "mod", "use", "static", "type", "let":
		if s.fn.state == fnNone {
			s.pendingAttrs = nil
		}
		return

	case "Resource":
		if s.scanResourceNew(start) {
			return
		}
	}

	// Print macros: ident directly followed by '!'.
	if printMacros[word] && s.peekAt(s.pos) == '!' {
		s.pos++
		s.emit(Unit{
			Kind: KindMacroCall,
			Span: Span{Start: start, End: s.pos},
			Name: word,
		}, s.context())
		return
	}

	// Interesting constructors followed by a call.
	if next, _ := s.peekNonSpace(s.pos); next == '(' {
		if deprecatedCalls[word] {
			s.emit(Unit{
				Kind: KindCall,
				Span: Span{Start: start, End: s.pos},
				Name: word,
			}, s.context())
		}
		if word == "create_resource" || word == "create_local_resource" {
			s.pendingCapture = &callCapture{
				kind:  captureResource,
				start: start,
				name:  word,
				ctx:   s.context(),
			}
		}
	}
}

// scanResourceNew consumes a Resource::new( call head and arms a
// resource capture. Returns true when the path matched.
func (s *scanner) scanResourceNew(start int) bool {
	c, i := s.peekNonSpace(s.pos)
	if c != ':' || s.peekAt(i+1) != ':' {
		return false
	}
	c2, j := s.peekNonSpace(i + 2)
	if c2 == 0 || !isIdentStart(c2) {
		return false
	}
	end := j
	for end < len(s.src) && isIdentPart(s.src[end]) {
		end++
	}
	if string(s.src[j:end]) != "new" {
		return false
	}
	if next, _ := s.peekNonSpace(end); next != '(' {
		s.pos = end
		return true
	}

	s.pendingCapture = &callCapture{
		kind:  captureResource,
		start: start,
		name:  "Resource::new",
		ctx:   s.context(),
	}
	s.pos = end
	return true
}

// skipGenerics consumes a <...> generic parameter list after a function
// name, tolerating -> arrows inside bounds.
func (s *scanner) skipGenerics() {
	c, i := s.peekNonSpace(s.pos)
	if c != '<' {
		return
	}
	depth := 0
	for ; i < len(s.src); i++ {
		switch s.src[i] {
		case '<':
			depth++
		case '>':
			if s.src[i-1] == '-' {
				continue // -> arrow inside a bound
			}
			depth--
			if depth == 0 {
				s.pos = i + 1
				return
			}
		}
	}
	s.pos = len(s.src)
}

// emitFnDecl materializes the tracked function signature.
func (s *scanner) emitFnDecl(end int) {
	ret := strings.TrimSpace(s.slice(Span{Start: s.fn.retStart, End: end}))
	ret = strings.TrimSpace(strings.TrimPrefix(ret, "->"))
	ret = stripWhereClause(ret)

	u := Unit{
		Kind:       KindFnDecl,
		Span:       Span{Start: s.fn.start, End: end},
		Name:       s.fn.name,
		Props:      paramNames(s.slice(s.fn.params)),
		ReturnType: ret,
	}
	for _, attr := range s.fn.attrs {
		switch attr {
		case "component":
			u.HasComponentMacro = true
		case "server":
			u.HasServerMacro = true
		}
	}

	s.emit(u, s.context())
	s.fn = fnTracker{state: fnNone}
}

// handleAngle treats '<' as a markup tag opener only inside view
// regions; everywhere else it is an operator or generics bracket.
func (s *scanner) handleAngle() {
	if s.ctx.inView || s.viewDepth > 0 {
		next := s.peekAt(s.pos + 1)
		if next == '/' {
			// Closing tag: consume to '>'.
			for s.pos < len(s.src) && s.src[s.pos] != '>' {
				s.pos++
			}
			if s.pos < len(s.src) {
				s.pos++
			}
			return
		}
		if next == '>' {
			s.pos += 2 // fragment
			return
		}
		if isIdentStart(next) && s.tagPosition() {
			s.scanElement()
			return
		}
	}
	s.pos++
}

// tagPosition reports whether a '<' sits where markup may begin.
// Comparisons and turbofish generics follow an expression byte instead.
func (s *scanner) tagPosition() bool {
	switch s.prevMeaningful() {
	case 0, '{', '}', '>', ';', ',', '(', '"':
		return true
	}
	return false
}

func (s *scanner) finishAtEOF() {
	// Unfinished captures keep what was scanned.
	for i := len(s.captures) - 1; i >= 0; i-- {
		s.finishCapture(s.captures[i], len(s.src))
	}
	s.captures = nil

	if len(s.closures) > 0 {
		s.endClosuresFrom(0, len(s.src))
	}

	if s.fn.state == fnAfterParams {
		s.emitFnDecl(len(s.src))
	}
}

// stripWhereClause cuts a trailing where clause off a return type text.
func stripWhereClause(ret string) string {
	depth := 0
	for i := 0; i+5 <= len(ret); i++ {
		switch ret[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i > 0 && ret[i-1] == '-' {
				continue
			}
			depth--
		}
		if depth == 0 && ret[i:i+5] == "where" {
			boundedLeft := i == 0 || !isIdentPart(ret[i-1])
			boundedRight := i+5 == len(ret) || !isIdentPart(ret[i+5])
			if boundedLeft && boundedRight {
				return strings.TrimSpace(ret[:i])
			}
		}
	}
	return ret
}

// paramNames extracts declared parameter names from a params span text.
func paramNames(params string) []string {
	var names []string
	depth := 0
	start := 0
	flush := func(end int) {
		part := strings.TrimSpace(params[start:end])
		if part == "" {
			return
		}
		// name: Type, mut name: Type. Receivers carry no colon.
		if colon := topLevelColon(part); colon > 0 {
			name := strings.TrimSpace(part[:colon])
			name = strings.TrimPrefix(name, "mut ")
			if name != "" && name[0] != '&' {
				names = append(names, name)
			}
		}
	}
	for i := 0; i < len(params); i++ {
		switch params[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i > 0 && params[i-1] == '-' {
				continue // -> in an Fn bound return
			}
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(params))
	return names
}

// topLevelColon finds the first ':' outside brackets, skipping '::'.
func topLevelColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ':':
			if depth == 0 {
				if i+1 < len(s) && s[i+1] == ':' {
					i++
					continue
				}
				return i
			}
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
