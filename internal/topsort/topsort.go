// Package topsort orders bootstrap steps by their declared dependencies.
package topsort

import (
	"fmt"
)

// Graph maps a step name to the names of the steps it depends on.
type Graph map[string][]string

// CycleError reports a dependency cycle through Node.
type CycleError struct {
	Node string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected involving %q", e.Node)
}

// UndefinedError reports a dependency on a step that is not in the graph.
type UndefinedError struct {
	Node string
	Dep  string
}

func (e *UndefinedError) Error() string {
	if e.Dep == "" {
		return fmt.Sprintf("step %q not found in graph", e.Node)
	}
	return fmt.Sprintf("%q depends on undefined step %q", e.Node, e.Dep)
}

// OrderError reports a step scheduled before one of its dependencies.
type OrderError struct {
	Node string
	Dep  string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%q is ordered before its dependency %q", e.Node, e.Dep)
}

// Sort returns nodes and their transitive dependencies, dependencies first.
// Ties keep the order in which nodes are given, so a list that is already
// consistent comes back unchanged.
func Sort(g Graph, nodes []string) ([]string, error) {
	result := make([]string, 0, len(nodes))
	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if inStack[name] {
			return &CycleError{Node: name}
		}
		if visited[name] {
			return nil
		}

		deps, exists := g[name]
		if !exists {
			return &UndefinedError{Node: name}
		}

		inStack[name] = true
		for _, dep := range deps {
			if _, ok := g[dep]; !ok {
				return &UndefinedError{Node: name, Dep: dep}
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		inStack[name] = false
		visited[name] = true

		result = append(result, name)
		return nil
	}

	for _, name := range nodes {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Ordered checks that order is a valid schedule for g: every step appears
// once and after all of its dependencies.
func Ordered(g Graph, order []string) error {
	if _, err := Sort(g, order); err != nil {
		return err
	}

	position := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := position[name]; dup {
			return fmt.Errorf("step %q is scheduled twice", name)
		}
		position[name] = i
	}

	for i, name := range order {
		for _, dep := range g[name] {
			j, ok := position[dep]
			if !ok || j > i {
				return &OrderError{Node: name, Dep: dep}
			}
		}
	}

	return nil
}
