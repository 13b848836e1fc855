package functions

import "github.com/titpetric/stylesc/ast"

// mapArg requires a Map argument; spec.md's Map literal (§5 supplement)
// has no teacher precedent, so these builtins are grounded directly on
// Sass's map module rather than any lessgo source.
func mapArg(fn string, args []ast.Expression, i int) (*ast.Map, error) {
	if i >= len(args) {
		return nil, argErr(fn, "missing map argument")
	}
	m, ok := args[i].(*ast.Map)
	if !ok {
		return nil, argErr(fn, "expected a map")
	}
	return m, nil
}

func MapGet(args []ast.Expression) (ast.Expression, error) {
	m, err := mapArg("map-get", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, argErr("map-get", "missing key argument")
	}
	for _, entry := range m.Entries {
		if valuesEqual(entry.Key, args[1]) {
			return entry.Value, nil
		}
	}
	return &ast.Null{}, nil
}

func MapHasKey(args []ast.Expression) (ast.Expression, error) {
	m, err := mapArg("map-has-key", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, argErr("map-has-key", "missing key argument")
	}
	for _, entry := range m.Entries {
		if valuesEqual(entry.Key, args[1]) {
			return boolResult(true), nil
		}
	}
	return boolResult(false), nil
}

// MapMerge overlays the second map's entries onto the first, preserving
// the first map's key order and appending any new keys.
func MapMerge(args []ast.Expression) (ast.Expression, error) {
	a, err := mapArg("map-merge", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := mapArg("map-merge", args, 1)
	if err != nil {
		return nil, err
	}
	entries := make([]ast.MapEntry, len(a.Entries))
	copy(entries, a.Entries)
	for _, be := range b.Entries {
		replaced := false
		for i, ae := range entries {
			if valuesEqual(ae.Key, be.Key) {
				entries[i].Value = be.Value
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, be)
		}
	}
	return &ast.Map{Entries: entries}, nil
}

func MapKeys(args []ast.Expression) (ast.Expression, error) {
	m, err := mapArg("map-keys", args, 0)
	if err != nil {
		return nil, err
	}
	items := make([]ast.Expression, len(m.Entries))
	for i, e := range m.Entries {
		items[i] = e.Key
	}
	return &ast.List{Items: items, Separator: ast.SepComma}, nil
}

func MapValues(args []ast.Expression) (ast.Expression, error) {
	m, err := mapArg("map-values", args, 0)
	if err != nil {
		return nil, err
	}
	items := make([]ast.Expression, len(m.Entries))
	for i, e := range m.Entries {
		items[i] = e.Value
	}
	return &ast.List{Items: items, Separator: ast.SepComma}, nil
}

func MapRemove(args []ast.Expression) (ast.Expression, error) {
	m, err := mapArg("map-remove", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, argErr("map-remove", "missing key argument")
	}
	entries := make([]ast.MapEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if !valuesEqual(e.Key, args[1]) {
			entries = append(entries, e)
		}
	}
	return &ast.Map{Entries: entries}, nil
}
