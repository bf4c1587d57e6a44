package result

// Reorder arranges docs to follow ids. IDs with no document are dropped;
// a repeated ID repeats the same document. The relevance order of docs is ignored.
func Reorder(ids []string, docs []Document) []Document {
	return ReorderBy(ids, docs, func(d Document) string { return d.ID })
}

// ReorderBy is Reorder for any item type keyed by key.
// When items hold the same key twice, the first one wins.
func ReorderBy[T any](ids []string, items []T, key func(T) string) []T {
	byID := make(map[string]int, len(items))
	for i, it := range items {
		k := key(it)
		if _, seen := byID[k]; !seen {
			byID[k] = i
		}
	}

	out := make([]T, 0, min(len(ids), len(items)))
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			out = append(out, items[i])
		}
	}
	return out
}
