package scan

// Kind identifies the structural role of a scanned unit.
type Kind int

const (
	// KindOpaque marks a region where structural inference stopped,
	// either because of a mismatched delimiter or unrecognized input.
	KindOpaque Kind = iota

	// KindReactiveRead is a tracked read of a signal-like value,
	// such as count.get() or name.with(...).
	KindReactiveRead

	// KindClosure is a closure expression, including its body.
	KindClosure

	// KindElement is a markup element open tag inside a view region,
	// carrying its parsed attribute list.
	KindElement

	// KindAttributeBinding is a single attribute with a bound value
	// inside an element tag.
	KindAttributeBinding

	// KindEventHandler is an on:* attribute inside an element tag.
	KindEventHandler

	// KindFnDecl is a function declaration, with component and server
	// annotations resolved from preceding attribute macros.
	KindFnDecl

	// KindResource is an async data construct taking a source and a
	// fetcher argument (Resource::new, create_resource).
	KindResource

	// KindMacroCall is a bare console print macro invocation
	// (println!, eprintln!, dbg!).
	KindMacroCall

	// KindCall is a plain call of an interesting constructor
	// (create_signal and friends), used for API deprecation checks.
	KindCall

	// KindRawHTML is an inner_html attribute or method call that
	// injects a string as markup.
	KindRawHTML
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindReactiveRead:
		return "reactive-read"
	case KindClosure:
		return "closure"
	case KindElement:
		return "element"
	case KindAttributeBinding:
		return "attribute-binding"
	case KindEventHandler:
		return "event-handler"
	case KindFnDecl:
		return "fn-decl"
	case KindResource:
		return "resource"
	case KindMacroCall:
		return "macro-call"
	case KindCall:
		return "call"
	case KindRawHTML:
		return "raw-html"
	default:
		return "unknown"
	}
}

// Attr is one parsed attribute of an element tag.
type Attr struct {
	// Name is the attribute name, including any namespace prefix
	// (value, prop:value, on:input, class, inner_html).
	Name string

	// Value is the raw attribute value text, empty for bare attributes.
	Value string

	// Span covers the whole name=value pair.
	Span Span

	// ValueSpan covers just the value text.
	ValueSpan Span
}

// Unit is one contiguous span of source text with a structural role.
// Units are immutable once produced by the scanner.
type Unit struct {
	// Kind tags the structural role of this unit.
	Kind Kind

	// Span is the byte range of the unit in the source.
	Span Span

	// Text is the raw source text covered by Span.
	Text string

	// Name depends on Kind: element tag, macro or call name, function
	// name, event name, or the read method (get, with, read).
	Name string

	// Receiver is the identifier a reactive read was called on, when
	// one directly precedes the call.
	Receiver string

	// InView is true when the unit appears inside a view! region.
	InView bool

	// InClosure is true when the unit appears inside a closure body.
	InClosure bool

	// ClosureHasMove reports whether the innermost enclosing closure
	// declares a move capture. Only meaningful when InClosure is true.
	ClosureHasMove bool

	// InAttribute is true when the unit appears inside an attribute
	// value of a markup element.
	InAttribute bool

	// HasMove reports a move capture on closure units.
	HasMove bool

	// Attrs is the parsed attribute list of element units.
	Attrs []Attr

	// Props lists declared parameter names of function declarations.
	Props []string

	// ReturnType is the declared return type text of function
	// declarations, empty when none.
	ReturnType string

	// HasComponentMacro is true when a component attribute macro
	// precedes a function declaration.
	HasComponentMacro bool

	// HasServerMacro is true when a server attribute macro precedes a
	// function declaration.
	HasServerMacro bool

	// SourceText is the first argument text of resource units.
	SourceText string

	// FetcherText is the second argument text of resource units.
	FetcherText string

	// FetcherSpan is the byte range of the fetcher argument.
	FetcherSpan Span
}

// AttrByName returns the first attribute with the given name.
func (u *Unit) AttrByName(name string) (Attr, bool) {
	for _, a := range u.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// HasAttrPrefix returns true if any attribute name starts with prefix.
func (u *Unit) HasAttrPrefix(prefix string) bool {
	for _, a := range u.Attrs {
		if len(a.Name) >= len(prefix) && a.Name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
