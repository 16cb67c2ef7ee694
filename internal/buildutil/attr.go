// Package buildutil provides utilities for extracting attributes from
// buildtools AST nodes.
package buildutil

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"
)

// CallName returns the called function's identifier, or "" when the callee
// is not a plain identifier (e.g. native.library).
func CallName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// String returns the named string attribute of a call, or "" when it is
// missing or not a string literal.
func String(call *build.CallExpr, name string) string {
	str, ok := attr(call, name).(*build.StringExpr)
	if !ok {
		return ""
	}
	return str.Value
}

// StringList returns the named list attribute of a call. A missing
// attribute yields nil. An attribute that is not a list literal, or a list
// holding anything other than string literals, is an error.
func StringList(call *build.CallExpr, name string) ([]string, error) {
	rhs := attr(call, name)
	if rhs == nil {
		return nil, nil
	}
	list, ok := rhs.(*build.ListExpr)
	if !ok {
		return nil, fmt.Errorf("attribute %q: want a list of strings, got %s", name, exprKind(rhs))
	}
	result := make([]string, 0, len(list.List))
	for i, elem := range list.List {
		str, ok := elem.(*build.StringExpr)
		if !ok {
			return nil, fmt.Errorf("attribute %q: element %d is %s, not a string literal", name, i, exprKind(elem))
		}
		result = append(result, str.Value)
	}
	return result, nil
}

// Keywords returns the keyword argument names of a call in order.
func Keywords(call *build.CallExpr) []string {
	var names []string
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok {
			names = append(names, lhs.Name)
		}
	}
	return names
}

func exprKind(e build.Expr) string {
	switch e := e.(type) {
	case *build.StringExpr:
		return "a string"
	case *build.ListExpr:
		return "a list"
	case *build.Ident:
		return fmt.Sprintf("identifier %s", e.Name)
	case *build.LiteralExpr:
		return fmt.Sprintf("literal %s", e.Token)
	case *build.CallExpr:
		return "a call"
	default:
		return "an expression"
	}
}

// attr returns the right-hand side of name=... in a call, or nil.
func attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok || lhs.Name != name {
			continue
		}
		return assign.RHS
	}
	return nil
}
