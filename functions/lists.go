package functions

import "github.com/titpetric/stylesc/ast"

// listArg normalizes a bare scalar into a one-element list the way Sass's
// list builtins treat any non-list value as a singleton list, grounded on
// the teacher's Length/Extract (functions/types.go) which fell back to
// "1 item" for non-list text.
func listArg(e ast.Expression) *ast.List {
	if l, ok := e.(*ast.List); ok {
		return l
	}
	return &ast.List{Items: []ast.Expression{e}, Separator: ast.SepSpace}
}

func Length(args []ast.Expression) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, argErr("length", "missing argument")
	}
	if m, ok := args[0].(*ast.Map); ok {
		return &ast.Number{Value: float64(len(m.Entries))}, nil
	}
	return &ast.Number{Value: float64(len(listArg(args[0]).Items))}, nil
}

func Nth(args []ast.Expression) (ast.Expression, error) {
	if len(args) < 2 {
		return nil, argErr("nth", "requires a list and an index")
	}
	list := listArg(args[0])
	idx, err := number("nth", args, 1)
	if err != nil {
		return nil, err
	}
	i := sassIndex(int(idx.Value), len(list.Items))
	if i < 0 || i >= len(list.Items) {
		return nil, argErr("nth", "index out of range")
	}
	return list.Items[i], nil
}

func ListSeparator(args []ast.Expression) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, argErr("list-separator", "missing argument")
	}
	sep := "space"
	if l, ok := args[0].(*ast.List); ok && l.Separator == ast.SepComma {
		sep = "comma"
	}
	return &ast.StringQuoted{Value: sep, QuoteMark: '"'}, nil
}

func Join(args []ast.Expression) (ast.Expression, error) {
	if len(args) < 2 {
		return nil, argErr("join", "requires two lists")
	}
	a := listArg(args[0])
	b := listArg(args[1])
	sep := a.Separator
	if len(args) > 2 {
		s, err := stringArg("join", args, 2)
		if err != nil {
			return nil, err
		}
		if s == "comma" {
			sep = ast.SepComma
		} else if s == "space" {
			sep = ast.SepSpace
		}
	}
	items := make([]ast.Expression, 0, len(a.Items)+len(b.Items))
	items = append(items, a.Items...)
	items = append(items, b.Items...)
	return &ast.List{Items: items, Separator: sep}, nil
}

func Append(args []ast.Expression) (ast.Expression, error) {
	if len(args) < 2 {
		return nil, argErr("append", "requires a list and a value")
	}
	a := listArg(args[0])
	sep := a.Separator
	if len(args) > 2 {
		s, err := stringArg("append", args, 2)
		if err != nil {
			return nil, err
		}
		if s == "comma" {
			sep = ast.SepComma
		} else if s == "space" {
			sep = ast.SepSpace
		}
	}
	items := make([]ast.Expression, 0, len(a.Items)+1)
	items = append(items, a.Items...)
	items = append(items, args[1])
	return &ast.List{Items: items, Separator: sep}, nil
}

func Index(args []ast.Expression) (ast.Expression, error) {
	if len(args) < 2 {
		return nil, argErr("index", "requires a list and a value")
	}
	list := listArg(args[0])
	for i, item := range list.Items {
		if valuesEqual(item, args[1]) {
			return &ast.Number{Value: float64(i + 1)}, nil
		}
	}
	return &ast.Null{}, nil
}

func Zip(args []ast.Expression) (ast.Expression, error) {
	if len(args) == 0 {
		return &ast.List{Separator: ast.SepComma}, nil
	}
	lists := make([]*ast.List, len(args))
	shortest := -1
	for i, a := range args {
		lists[i] = listArg(a)
		if shortest == -1 || len(lists[i].Items) < shortest {
			shortest = len(lists[i].Items)
		}
	}
	rows := make([]ast.Expression, shortest)
	for i := 0; i < shortest; i++ {
		row := make([]ast.Expression, len(lists))
		for j, l := range lists {
			row[j] = l.Items[i]
		}
		rows[i] = &ast.List{Items: row, Separator: ast.SepSpace}
	}
	return &ast.List{Items: rows, Separator: ast.SepComma}, nil
}

func IsBracketed(args []ast.Expression) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, argErr("is-bracketed", "missing argument")
	}
	l, ok := args[0].(*ast.List)
	return boolResult(ok && l.IsBracketed), nil
}
