package domain

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"strings"
)

// Catalog is the immutable, id-sorted set of eateries built once at startup.
// All methods are safe for concurrent use without locking; nothing in a
// Catalog changes after NewCatalog returns.
type Catalog struct {
	entries []Eatery
	byID    map[uint64]int
	version string
}

// NewCatalog copies es, sorts it ascending by id and indexes it.
// The sort is stable, so among duplicate ids the earlier input wins lookups.
func NewCatalog(es []Eatery) *Catalog {
	entries := make([]Eatery, len(es))
	for i, e := range es {
		entries[i] = e.clone()
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	byID := make(map[uint64]int, len(entries))
	for i, e := range entries {
		if _, seen := byID[e.ID]; !seen {
			byID[e.ID] = i
		}
	}

	return &Catalog{entries: entries, byID: byID, version: fingerprint(entries)}
}

func (c *Catalog) Len() int { return len(c.entries) }

// Version is a content hash of the catalog; equal contents give equal versions.
func (c *Catalog) Version() string { return c.version }

// List returns every entry projected to EateryBasic, in id order.
func (c *Catalog) List() []EateryBasic {
	out := make([]EateryBasic, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Basic())
	}
	return out
}

// Get returns a copy of the first entry with the given id.
func (c *Catalog) Get(id uint64) (Eatery, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Eatery{}, false
	}
	return c.entries[i].clone(), true
}

// SearchByName returns entries whose name contains q, ignoring case, in id order.
// An empty q matches everything.
func (c *Catalog) SearchByName(q string) []EateryBasic {
	needle := strings.ToLower(q)
	out := make([]EateryBasic, 0)
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e.Basic())
		}
	}
	return out
}

// DuplicateIDs lists ids held by more than one entry, ascending.
func (c *Catalog) DuplicateIDs() []uint64 {
	var dups []uint64
	for i := 1; i < len(c.entries); i++ {
		id := c.entries[i].ID
		if id == c.entries[i-1].ID && (len(dups) == 0 || dups[len(dups)-1] != id) {
			dups = append(dups, id)
		}
	}
	return dups
}

func fingerprint(entries []Eatery) string {
	h := sha1.New()
	var buf [8]byte
	writeStr := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeStrs := func(ss []string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(ss)))
		h.Write(buf[:])
		for _, s := range ss {
			writeStr(s)
		}
	}
	for _, e := range entries {
		binary.BigEndian.PutUint64(buf[:], e.ID)
		h.Write(buf[:])
		writeStr(e.Name)
		writeStrs(e.Categories)
		writeStr(e.OpenTime)
		writeStr(e.CloseTime)
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(e.Rating))
		h.Write(buf[:])
		writeStr(e.Photo)
		writeStr(e.Address)
		writeStr(e.PhoneNumber)
		writeStrs(e.Reviews)
	}
	return hex.EncodeToString(h.Sum(nil))
}
