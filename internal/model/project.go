package model

import (
	"path/filepath"
	"strings"
)

// Project is the root handle handed to the generator.
type Project struct {
	Name             string
	Path             string
	Classes          []*DesignClass
	Interfaces       []*Interface
	ClassDiagrams    []*ClassDiagram
	SequenceDiagrams []*SequenceDiagram
}

// Class looks a class up by name.
func (p *Project) Class(name string) *DesignClass {
	if p == nil {
		return nil
	}
	for _, c := range p.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Interface looks an interface up by name.
func (p *Project) Interface(name string) *Interface {
	if p == nil {
		return nil
	}
	for _, i := range p.Interfaces {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// OutputDir derives <project-dir>/<project-file-name-without-ext> from the
// project file path.
func OutputDir(projectPath string) string {
	if strings.TrimSpace(projectPath) == "" {
		return ""
	}
	dir := filepath.Dir(projectPath)
	base := filepath.Base(projectPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base)
}
