package site

import (
	"fmt"
	"regexp"
)

var whitespace = regexp.MustCompile(`\s+`)

// Category is one group of the index.
type Category struct {
	Name string
	// ID is the element identifier derived from Name; unique within the index.
	ID        string
	Documents []Document
}

// DocumentID identifies the i-th document of the category in the rendered page.
func (c Category) DocumentID(i int) string {
	return fmt.Sprintf("%s-%d", c.ID, i)
}

// CategoryIndex groups documents by category. Categories appear in the order
// they are first met in the input, documents keep their input order.
type CategoryIndex []Category

// BuildIndex groups docs, which are expected to be sorted already.
func BuildIndex(docs []Document) CategoryIndex {
	var index CategoryIndex
	pos := map[string]int{}
	usedIDs := map[string]bool{}
	for _, d := range docs {
		i, ok := pos[d.Category]
		if !ok {
			i = len(index)
			pos[d.Category] = i
			id := uniqueID(categoryID(d.Category), usedIDs)
			index = append(index, Category{Name: d.Category, ID: id})
		}
		index[i].Documents = append(index[i].Documents, d)
	}
	return index
}

// Len returns the number of documents across all categories.
func (idx CategoryIndex) Len() int {
	n := 0
	for _, c := range idx {
		n += len(c.Documents)
	}
	return n
}

func categoryID(name string) string {
	return whitespace.ReplaceAllString(name, "-")
}

// uniqueID suffixes -2, -3, ... when different category names normalize to the same id.
func uniqueID(id string, used map[string]bool) string {
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	used[candidate] = true
	return candidate
}
