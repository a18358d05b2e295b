package testhelpers

import "github.com/LegacyCodeHQ/buildgraph/resolution"

// SampleReport returns a report with one node of every kind: a plain project, a
// project with build work, an external module, an excluded project, and a cycle.
func SampleReport() resolution.Report {
	return resolution.Report{
		Root: "app",
		View: "default",
		Nodes: []resolution.NodeReport{
			{
				ID:            1,
				Name:          "app",
				Component:     "project :app",
				Configuration: "runtimeClasspath",
				Project:       true,
				Dependencies:  []string{"core", "guava", "lint"},
				Included:      true,
			},
			{
				ID:            2,
				Name:          "core",
				Component:     "project :core",
				Configuration: "runtimeElements",
				Project:       true,
				Dependencies:  []string{"guava", "app"},
				Included:      true,
				Artifacts: []resolution.ArtifactReport{
					{Name: "core.jar", Type: "jar", Path: "core/build/libs/core.jar", Task: ":core:jar"},
				},
				Tasks: []string{":core:jar"},
			},
			{
				ID:            3,
				Name:          "guava",
				Component:     "com.google.guava:guava:32.1.3-jre",
				Configuration: "runtime",
				Included:      true,
				Artifacts: []resolution.ArtifactReport{
					{Name: "guava-32.1.3-jre.jar", Type: "jar", Path: "caches/guava-32.1.3-jre.jar"},
				},
			},
			{
				ID:            4,
				Name:          "lint",
				Component:     "project plugins:lint",
				Configuration: "runtimeElements",
				Project:       true,
				Included:      false,
			},
		},
		Artifacts: []resolution.ArtifactReport{
			{Name: "guava-32.1.3-jre.jar", Type: "jar", Path: "caches/guava-32.1.3-jre.jar"},
			{Name: "core.jar", Type: "jar", Path: "core/build/libs/core.jar", Task: ":core:jar"},
		},
		Plan:   []string{":core:compileJava", ":core:jar"},
		Cycles: []resolution.CycleReport{{From: "core", To: "app"}},
	}
}
