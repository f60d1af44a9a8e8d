package gjson

import "strconv"

// RootPath is the path of the top-level value.
const RootPath = "$"

// Paths locate a value for diagnostics only; they are never used for lookup.
// Keys are appended verbatim with a '.' separator, array elements as [i].

// PathField returns the path of member key within the object at base.
func PathField(base, key string) string {
	if base == "" {
		base = RootPath
	}
	return base + "." + key
}

// PathIndex returns the path of element i within the array at base.
func PathIndex(base string, i int) string {
	if base == "" {
		base = RootPath
	}
	return base + "[" + strconv.Itoa(i) + "]"
}
