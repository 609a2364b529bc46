// Package hooks runs the Tengo scripts a package ships under tools/.
package hooks

import (
	"path/filepath"
)

// ScriptType names a package script.
type ScriptType string

const (
	// Init runs once per solution the first time a package is added.
	Init ScriptType = "init"
	// Install runs after the package was added to a project.
	Install ScriptType = "install"
	// Uninstall runs before the package is removed from a project.
	Uninstall ScriptType = "uninstall"
)

// ToolsDir is the archive directory holding package scripts.
const ToolsDir = "tools"

// ScriptExtension is the file extension of package scripts.
const ScriptExtension = ".tengo"

// ScriptPath returns where a script of type t lives in an extracted package.
func ScriptPath(packageDir string, t ScriptType) string {
	return filepath.Join(packageDir, ToolsDir, string(t)+ScriptExtension)
}

// Context is what a script sees about the operation that runs it.
type Context struct {
	PackageID      string
	PackageVersion string
	Operation      string
	PackageDir     string
	ProjectName    string
	ProjectDir     string
	Properties     map[string]string
	Vars           map[string]interface{}
}
