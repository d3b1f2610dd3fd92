package ui

// ID identifies a widget call site. Stable across frames for the same label
// under the same ancestor chain, distinct for identical labels under
// different parents.
type ID uint64

// IDNil is never produced by hashing.
const IDNil ID = 0

// FNV-1a 64. The original seed/prime constants; the hash is part of the
// deterministic-output contract, so no per-process randomization.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func hashString(seed ID, s string) ID {
	h := uint64(seed)
	if h == 0 {
		h = fnvOffset
	}
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	if h == 0 {
		h = 1
	}
	return ID(h)
}

func hashInt(seed ID, v uint64) ID {
	h := uint64(seed)
	if h == 0 {
		h = fnvOffset
	}
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	if h == 0 {
		h = 1
	}
	return ID(h)
}

// PushID scopes subsequent widget labels under label, so repeated labels in
// different containers stay distinct. Must be paired with PopID before
// EndFrame.
func (c *Ctx) PushID(label string) {
	c.idStack = append(c.idStack, hashString(c.idSeed(), label))
}

// PushIDInt is PushID for loop indices.
func (c *Ctx) PushIDInt(v int) {
	c.idStack = append(c.idStack, hashInt(c.idSeed(), uint64(v)))
}

func (c *Ctx) PopID() {
	if len(c.idStack) == 0 {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedIDStack)
		return
	}
	c.idStack = c.idStack[:len(c.idStack)-1]
}

func (c *Ctx) idSeed() ID {
	if len(c.idStack) == 0 {
		return IDNil
	}
	return c.idStack[len(c.idStack)-1]
}

// genID derives a widget ID from the label and the current stack top.
func (c *Ctx) genID(label string) ID {
	return hashString(c.idSeed(), label)
}

// globalID hashes a label with no parent scope. Panels are roots and use
// this so their identity is independent of call nesting.
func globalID(label string) ID {
	return hashString(IDNil, label)
}
