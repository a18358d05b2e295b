package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf_NoArtifactsIsEmpty(t *testing.T) {
	assert.Equal(t, Empty, Of())
}

func TestComposite(t *testing.T) {
	a, b, c := jar("a"), jar("b"), jar("c")

	assert.Equal(t, Empty, Composite())
	assert.Equal(t, Empty, Composite(nil, Empty))
	assert.Same(t, a, Composite(Empty, a, nil))

	nested := Composite(a, Composite(b, c))
	assert.Equal(t, []string{"a.jar", "b.jar", "c.jar"}, artifactNames(nested))
	assert.Equal(t, []string{":a:jar", ":b:jar", ":c:jar"}, BuildTasks(nested))
}

func TestNoBuildDependencies(t *testing.T) {
	a := jar("a")

	wrapped := NoBuildDependencies(a)

	assert.Equal(t, []string{"a.jar"}, artifactNames(wrapped))
	assert.Empty(t, BuildTasks(wrapped))
	assert.False(t, HasBuildDependencies(wrapped))
	assert.True(t, HasBuildDependencies(a))
	assert.Same(t, wrapped, NoBuildDependencies(wrapped))
	assert.Equal(t, Empty, NoBuildDependencies(nil))
	assert.Equal(t, Empty, NoBuildDependencies(Empty))
}

func TestBuildTasks_FirstSeenOrder(t *testing.T) {
	set := Of(
		Artifact{Name: "b.jar", Task: ":b:jar"},
		Artifact{Name: "a.jar", Task: ":a:jar"},
		Artifact{Name: "b-sources.jar", Task: ":b:jar"},
		Artifact{Name: "prebuilt.jar"},
	)

	assert.Equal(t, []string{":b:jar", ":a:jar"}, BuildTasks(set))
}
