package geom

import "strings"

// Index is the ordered country dataset. Order is the order of the source
// file and decides ties when boundaries overlap.
type Index struct {
	countries []*Country
	byName    map[string]*Country
	pos       map[*Country]int
}

func NewIndex(countries []*Country) *Index {
	idx := &Index{
		countries: countries,
		byName:    make(map[string]*Country, len(countries)),
		pos:       make(map[*Country]int, len(countries)),
	}
	for i, c := range countries {
		idx.pos[c] = i
		key := strings.ToLower(c.Name)
		if _, dup := idx.byName[key]; !dup {
			idx.byName[key] = c
		}
	}
	return idx
}

// Countries returns the dataset in order. Callers must not modify it.
func (idx *Index) Countries() []*Country {
	if idx == nil {
		return nil
	}
	return idx.countries
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.countries)
}

// ByName looks a country up case-insensitively.
func (idx *Index) ByName(name string) (*Country, bool) {
	if idx == nil {
		return nil, false
	}
	c, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// FindCountryAt returns the first country containing p, or nil for ocean.
func FindCountryAt(p GeoPoint, countries []*Country) *Country {
	for _, c := range countries {
		if c.Contains(p) {
			return c
		}
	}
	return nil
}

func (idx *Index) CountryAt(p GeoPoint) *Country {
	return FindCountryAt(p, idx.Countries())
}

// CountryAtHint returns the same country as CountryAt but tests hint first.
// When hint contains p only the countries ordered before it are checked, so
// rapid hover inside one country mostly costs bounding-box rejections.
func (idx *Index) CountryAtHint(p GeoPoint, hint *Country) *Country {
	if idx == nil {
		return nil
	}
	i, ok := idx.pos[hint]
	if !ok || !hint.Contains(p) {
		return idx.CountryAt(p)
	}
	if c := FindCountryAt(p, idx.countries[:i]); c != nil {
		return c
	}
	return hint
}

// ResolveClickTarget is the only place a click point is turned into a
// country. Country clicks and ocean clicks both go through it so they
// cannot disagree.
func (idx *Index) ResolveClickTarget(p GeoPoint) *Country {
	return idx.CountryAt(p)
}
