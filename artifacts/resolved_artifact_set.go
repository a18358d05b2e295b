package artifacts

// Artifact is one concrete build output.
type Artifact struct {
	Name string
	Type string
	Path string
	// Task is the build task that produces the artifact. Empty when the artifact
	// already exists and nothing has to run before it can be used.
	Task string
}

// TaskCollector receives the build tasks that must run before a set of artifacts can be used.
type TaskCollector interface {
	AddTask(task string)
}

// ResolvedArtifactSet is a composable collection of concrete artifacts together with
// the build work needed to produce them.
//
// Implementations should be pointers: Select deduplicates collections by identity and
// keeps every occurrence of a set whose dynamic type is not comparable.
type ResolvedArtifactSet interface {
	Artifacts() []Artifact
	VisitBuildDependencies(tasks TaskCollector)
}

// Empty is the resolved artifact set with no artifacts and no build work.
var Empty ResolvedArtifactSet = emptySet{}

type emptySet struct{}

func (emptySet) Artifacts() []Artifact { return nil }

func (emptySet) VisitBuildDependencies(TaskCollector) {}

type fileSet struct {
	artifacts []Artifact
}

// Of returns a resolved artifact set holding artifacts. Every artifact with a Task
// contributes that task as a build dependency.
func Of(artifacts ...Artifact) ResolvedArtifactSet {
	if len(artifacts) == 0 {
		return Empty
	}
	return &fileSet{artifacts: append([]Artifact(nil), artifacts...)}
}

func (s *fileSet) Artifacts() []Artifact {
	return append([]Artifact(nil), s.artifacts...)
}

func (s *fileSet) VisitBuildDependencies(tasks TaskCollector) {
	for _, a := range s.artifacts {
		if a.Task != "" {
			tasks.AddTask(a.Task)
		}
	}
}

type compositeSet struct {
	sets []ResolvedArtifactSet
}

// Composite returns the union of sets in the given order. Empty and nil members are
// dropped and nested composites are flattened.
func Composite(sets ...ResolvedArtifactSet) ResolvedArtifactSet {
	var flat []ResolvedArtifactSet
	for _, s := range sets {
		switch s := s.(type) {
		case nil, emptySet:
			continue
		case *compositeSet:
			flat = append(flat, s.sets...)
		default:
			flat = append(flat, s)
		}
	}

	switch len(flat) {
	case 0:
		return Empty
	case 1:
		return flat[0]
	}
	return &compositeSet{sets: flat}
}

func (s *compositeSet) Artifacts() []Artifact {
	var result []Artifact
	for _, set := range s.sets {
		result = append(result, set.Artifacts()...)
	}
	return result
}

func (s *compositeSet) VisitBuildDependencies(tasks TaskCollector) {
	for _, set := range s.sets {
		set.VisitBuildDependencies(tasks)
	}
}

type noBuildDependenciesSet struct {
	delegate ResolvedArtifactSet
}

// NoBuildDependencies wraps set so that it enumerates the same artifacts but reports
// no build work.
func NoBuildDependencies(set ResolvedArtifactSet) ResolvedArtifactSet {
	switch set.(type) {
	case nil, emptySet:
		return Empty
	case *noBuildDependenciesSet:
		return set
	}
	return &noBuildDependenciesSet{delegate: set}
}

func (s *noBuildDependenciesSet) Artifacts() []Artifact {
	return s.delegate.Artifacts()
}

func (s *noBuildDependenciesSet) VisitBuildDependencies(TaskCollector) {}

// HasBuildDependencies reports whether set is not wrapped by NoBuildDependencies.
func HasBuildDependencies(set ResolvedArtifactSet) bool {
	_, wrapped := set.(*noBuildDependenciesSet)
	return !wrapped
}

// TaskSet collects build tasks in first-seen order.
type TaskSet struct {
	tasks []string
	seen  map[string]bool
}

func (t *TaskSet) AddTask(task string) {
	if t.seen == nil {
		t.seen = make(map[string]bool)
	}
	if t.seen[task] {
		return
	}
	t.seen[task] = true
	t.tasks = append(t.tasks, task)
}

// Tasks returns the collected tasks in the order they were first added.
func (t *TaskSet) Tasks() []string {
	return append([]string(nil), t.tasks...)
}

// BuildTasks returns the build tasks of set in first-seen order.
func BuildTasks(set ResolvedArtifactSet) []string {
	var tasks TaskSet
	set.VisitBuildDependencies(&tasks)
	return tasks.Tasks()
}
