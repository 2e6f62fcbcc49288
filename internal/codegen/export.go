package codegen

import (
	"os"
	"path/filepath"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Artifact is one exported file.
type Artifact struct {
	FileName string
	Content  string
}

// Artifacts returns the files of target for the snapshot.
func Artifacts(project types.Project, components []types.ComponentInstance, target string) ([]Artifact, error) {
	switch target {
	case TargetStatic:
		return []Artifact{{
			FileName: FileName(TargetStatic, ""),
			Content:  StaticDocument(project, components),
		}}, nil
	case TargetScaffold:
		files := ScaffoldFiles(project)
		out := make([]Artifact, len(files))
		for i, f := range files {
			out[i] = Artifact{FileName: f.FileName, Content: f.Content}
		}
		return out, nil
	default:
		return nil, errors.Validation(errors.CodeUnknownTarget, "unknown export target: "+target).
			WithContext("target", target)
	}
}

// Export writes the artifacts of target into dir and returns the written
// paths.
func Export(dir string, project types.Project, components []types.ComponentInstance, target string) ([]string, error) {
	artifacts, err := Artifacts(project, components, target)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.IO(errors.CodeWriteFailed, "failed to create output directory", err).
			WithContext("dir", dir)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.FileName)
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return paths, errors.IO(errors.CodeWriteFailed, "failed to write "+a.FileName, err).
				WithContext("path", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
