package utils

// A filter that matches strings.
type StringFilter struct {
	emptyIsAny bool
	contents   map[string]bool
}

func NewStringFilterFromSlice(slice []string) *StringFilter {
	contents := make(map[string]bool)
	for _, item := range slice {
		contents[item] = true
	}

	return &StringFilter{true, contents}
}

// Force the filter to match nothing if it is empty.
func (f *StringFilter) SetStrict() {
	f.emptyIsAny = false
}

func (f *StringFilter) Match(item string) bool {
	if len(f.contents) == 0 {
		return f.emptyIsAny
	}

	_, ok := f.contents[item]
	return ok
}

// Missing returns the filter entries not present in items, in no particular
// order.
func (f *StringFilter) Missing(items []string) []string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item] = true
	}

	var missing []string
	for item := range f.contents {
		if !seen[item] {
			missing = append(missing, item)
		}
	}

	return missing
}
