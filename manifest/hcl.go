package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile is the top-level structure of an HCL graph description.
type hclFile struct {
	Root         string            `hcl:"root"`
	Nodes        []*hclNode        `hcl:"node,block"`
	ArtifactSets []*hclArtifactSet `hcl:"artifact_set,block"`
	Tasks        []*hclTask        `hcl:"task,block"`
}

type hclNode struct {
	Name          string           `hcl:"name,label"`
	Project       string           `hcl:"project,optional"`
	Build         string           `hcl:"build,optional"`
	Module        string           `hcl:"module,optional"`
	Configuration string           `hcl:"configuration,optional"`
	Local         *bool            `hcl:"local,optional"`
	Variants      []*hclVariant    `hcl:"variant,block"`
	Dependencies  []*hclDependency `hcl:"dependency,block"`
}

type hclVariant struct {
	Name       string            `hcl:"name,label"`
	Attributes map[string]string `hcl:"attributes,optional"`
	Artifacts  []*hclArtifact    `hcl:"artifact,block"`
}

type hclArtifact struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type,optional"`
	Path string `hcl:"path,optional"`
	Task string `hcl:"task,optional"`
}

type hclDependency struct {
	Targets     []string `hcl:"targets"`
	ArtifactSet string   `hcl:"artifact_set,optional"`
}

type hclArtifactSet struct {
	Name     string        `hcl:"name,label"`
	Node     string        `hcl:"node"`
	Variants []*hclVariant `hcl:"variant,block"`
}

type hclTask struct {
	Name      string   `hcl:"name,label"`
	DependsOn []string `hcl:"depends_on,optional"`
}

func parseHCL(src []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	doc := &Document{Root: parsed.Root}
	for _, n := range parsed.Nodes {
		node := NodeSpec{
			Name:          n.Name,
			Project:       n.Project,
			Build:         n.Build,
			Module:        n.Module,
			Configuration: n.Configuration,
			Local:         n.Local,
			Variants:      convertVariants(n.Variants),
		}
		for _, d := range n.Dependencies {
			node.Dependencies = append(node.Dependencies, DependencySpec{
				Targets:     d.Targets,
				ArtifactSet: d.ArtifactSet,
			})
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	for _, s := range parsed.ArtifactSets {
		doc.ArtifactSets = append(doc.ArtifactSets, ArtifactSetSpec{
			Name:     s.Name,
			Node:     s.Node,
			Variants: convertVariants(s.Variants),
		})
	}
	for _, t := range parsed.Tasks {
		doc.Tasks = append(doc.Tasks, TaskSpec{Name: t.Name, DependsOn: t.DependsOn})
	}
	return doc, nil
}

func convertVariants(variants []*hclVariant) []VariantSpec {
	var result []VariantSpec
	for _, v := range variants {
		variant := VariantSpec{Name: v.Name, Attributes: v.Attributes}
		for _, a := range v.Artifacts {
			variant.Artifacts = append(variant.Artifacts, ArtifactSpec{
				Name: a.Name,
				Type: a.Type,
				Path: a.Path,
				Task: a.Task,
			})
		}
		result = append(result, variant)
	}
	return result
}
