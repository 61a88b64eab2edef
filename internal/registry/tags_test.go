package registry

import (
	"testing"

	"weshow/internal/domain/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTagUsage(t *testing.T) {
	projects := []*project.Project{
		{Name: "Harbor House", Tags: []string{"Floor Plan", "Interior Rendering"}},
		{Name: "Loft 42", Tags: []string{"Interior Rendering"}},
		{Name: "Villa Sol", Tags: []string{"Animation", "Interior Rendering"}},
	}

	usage := ComputeTagUsage(projects)
	require.Len(t, usage, 3)

	byLabel := make(map[string]TagUsage)
	for _, u := range usage {
		byLabel[u.Label] = u
	}

	assert.Equal(t, 3, byLabel["Interior Rendering"].Count)
	assert.Equal(t, "Harbor House", byLabel["Interior Rendering"].FirstProject)
	assert.Equal(t, 1, byLabel["Floor Plan"].Count)
	assert.Equal(t, 1, byLabel["Animation"].Count)
	assert.Equal(t, "Villa Sol", byLabel["Animation"].FirstProject)
}

func TestComputeTagUsage_FirstAppearanceByArrayOrder(t *testing.T) {
	projects := []*project.Project{
		{Name: "Second Created First", Tags: []string{"Floor Plan"}},
		{Name: "First Created Second", Tags: []string{"Floor Plan"}},
	}

	usage := ComputeTagUsage(projects)
	require.Len(t, usage, 1)
	assert.Equal(t, "Second Created First", usage[0].FirstProject)
}

func TestTagUsage_RoundTrip(t *testing.T) {
	// Recomputing from scratch after every mutation matches the incrementally
	// expected counts.
	projects := []*project.Project{
		{Name: "A", Tags: []string{"Floor Plan"}},
	}
	assert.Equal(t, 1, UsageOf(projects, "Floor Plan"))

	projects = append(projects, &project.Project{Name: "B", Tags: []string{"Floor Plan", "Animation"}})
	assert.Equal(t, 2, UsageOf(projects, "Floor Plan"))
	assert.Equal(t, 1, UsageOf(projects, "Animation"))

	projects[0].Tags = nil
	assert.Equal(t, 1, UsageOf(projects, "Floor Plan"))

	projects[1].Tags = []string{"Animation"}
	assert.Equal(t, 0, UsageOf(projects, "Floor Plan"))
	assert.Equal(t, 1, UsageOf(projects, "Animation"))
}
