package abigen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Check parses a committed Go source file and compares every literal
// constant it declares against the contract.  It returns one line per
// problem: a package name mismatch, a missing constant, or a value
// drift.  A constant the source declares that the contract has never
// heard of is fine and ignored.  Problems come back sorted so output
// is stable.
func Check(goFile string, c *Contract) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, goFile, nil, 0)
	if err != nil {
		return nil, err
	}
	if file.Name.Name != c.Package {
		return []string{fmt.Sprintf("package is %q, contract says %q", file.Name.Name, c.Package)}, nil
	}

	declared := make(map[string]uint64)
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, s := range gd.Specs {
			vs := s.(*ast.ValueSpec)
			for i, name := range vs.Names {
				if i >= len(vs.Values) {
					continue
				}
				lit, ok := vs.Values[i].(*ast.BasicLit)
				if !ok || lit.Kind != token.INT {
					continue // computed constants are not contract material
				}
				v, err := strconv.ParseUint(lit.Value, 0, 64)
				if err != nil {
					continue
				}
				declared[name.Name] = v
			}
		}
	}

	var problems []string
	want := c.Values()
	names := maps.Keys(want)
	slices.Sort(names)
	for _, n := range names {
		got, ok := declared[n]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: missing constant %s", goFile, n))
			continue
		}
		if got != want[n] {
			problems = append(problems,
				fmt.Sprintf("%s: constant %s = %d, contract says %d", goFile, n, got, want[n]))
		}
	}
	return problems, nil
}
