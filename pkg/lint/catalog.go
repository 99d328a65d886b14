package lint

// Catalog is an immutable ordered collection of rules. Order is
// significant: report sorting breaks position ties by catalog index, so
// the same catalog always yields the same output.
type Catalog struct {
	rules  []Rule
	byID   map[string]int
	byName map[string]int
}

// NewCatalog builds a catalog from rules in the given order. A rule
// whose ID repeats an earlier entry is dropped.
func NewCatalog(rules []Rule) *Catalog {
	c := &Catalog{
		byID:   make(map[string]int, len(rules)),
		byName: make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if _, dup := c.byID[r.ID]; dup {
			continue
		}
		c.byID[r.ID] = len(c.rules)
		if r.Name != "" {
			if _, dup := c.byName[r.Name]; !dup {
				c.byName[r.Name] = len(c.rules)
			}
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Rules returns the rules in catalog order. The returned slice is a
// copy; the catalog itself never changes.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Get returns the rule with the given ID.
func (c *Catalog) Get(id string) (Rule, bool) {
	if i, ok := c.byID[id]; ok {
		return c.rules[i], true
	}
	return Rule{}, false
}

// Resolve looks a rule up by ID first, then by name.
func (c *Catalog) Resolve(key string) (Rule, bool) {
	if i, ok := c.byID[key]; ok {
		return c.rules[i], true
	}
	if i, ok := c.byName[key]; ok {
		return c.rules[i], true
	}
	return Rule{}, false
}

// Index returns the catalog position of the rule with the given ID.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// IDs returns all rule IDs in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.rules))
	for i := range c.rules {
		out[i] = c.rules[i].ID
	}
	return out
}
