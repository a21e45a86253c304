package migration

import "sort"

// resolveDependencies computes an execution order for the requested
// versions via depth-first post-order traversal: every dependency appears
// strictly before its dependents and each version is emitted exactly once.
// The walk is pure with respect to the runner's stored data; it executes no
// SQL and touches no ledger state.
func (r *Runner) resolveDependencies(targets []int) ([]int, error) {
	sorted := append([]int(nil), targets...)
	sort.Ints(sorted)

	visited := make(map[int]bool, len(sorted))
	onPath := make(map[int]bool)
	order := make([]int, 0, len(sorted))

	for _, version := range sorted {
		resolved, err := r.visit(version, visited, onPath, order)
		if err != nil {
			return nil, err
		}
		order = resolved
	}

	return order, nil
}

// visit recursively resolves one version. onPath marks the current
// recursion path for cycle detection; visited memoises fully resolved
// subtrees so shared dependencies are not re-traversed.
func (r *Runner) visit(version int, visited, onPath map[int]bool, order []int) ([]int, error) {
	if onPath[version] {
		return nil, NewDependencyError(version, 0, ErrCyclicDependency)
	}
	if visited[version] {
		return order, nil
	}

	onPath[version] = true
	for _, dep := range r.graph[version] {
		if _, ok := r.migrations[dep]; !ok {
			return nil, NewDependencyError(version, dep, ErrMissingDependency)
		}
		resolved, err := r.visit(dep, visited, onPath, order)
		if err != nil {
			return nil, err
		}
		order = resolved
	}
	delete(onPath, version)

	visited[version] = true
	return append(order, version), nil
}
