package registry

import "weshow/internal/domain/project"

// TagUsage is the derived view for one deliverable tag: how many projects
// carry it and the first project (by array order) in which it appears.
type TagUsage struct {
	Label        string
	Count        int
	FirstProject string
}

// PresetTags is the built-in deliverable palette offered to every studio.
var PresetTags = []string{
	"Interior Rendering",
	"Exterior Rendering",
	"Floor Plan",
	"3D Walkthrough",
	"Virtual Staging",
	"Animation",
}

// ComputeTagUsage recomputes the usage view from scratch on every call.
// It is never patched incrementally, so it cannot drift from the project
// list. Order of the result follows first appearance across projects, with
// array order as the tiebreak (creation time is not reliable here).
func ComputeTagUsage(projects []*project.Project) []TagUsage {
	index := make(map[string]int)
	var usage []TagUsage

	for _, p := range projects {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				usage[i].Count++
				continue
			}
			index[tag] = len(usage)
			usage = append(usage, TagUsage{
				Label:        tag,
				Count:        1,
				FirstProject: p.Name,
			})
		}
	}

	return usage
}

// UsageOf returns the recomputed count for a single tag.
func UsageOf(projects []*project.Project, label string) int {
	for _, u := range ComputeTagUsage(projects) {
		if u.Label == label {
			return u.Count
		}
	}

	return 0
}
