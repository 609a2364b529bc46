package hooks

import (
	"context"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
)

// TengoRunner executes package scripts with the Tengo interpreter.
type TengoRunner struct {
	modules []string
}

// NewTengoRunner creates a runner exposing the fmt, json, os, text and times
// standard modules to scripts.
func NewTengoRunner() *TengoRunner {
	return &TengoRunner{modules: []string{"fmt", "json", "os", "text", "times"}}
}

// Run executes the script of type t from hc.PackageDir. A package without that
// script is not an error.
func (r *TengoRunner) Run(ctx context.Context, t ScriptType, hc *Context) error {
	scriptPath := ScriptPath(hc.PackageDir, t)
	content, err := os.ReadFile(scriptPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", scriptPath, err)
	}

	logger.Debug("running package script", logger.Fields{
		"script":  scriptPath,
		"package": hc.PackageID,
		"project": hc.ProjectName,
	})
	return r.RunSource(ctx, string(t), content, hc)
}

// RunSource executes script source. name is used in error messages.
func (r *TengoRunner) RunSource(ctx context.Context, name string, src []byte, hc *Context) error {
	script := tengo.NewScript(src)

	modules := stdlib.GetModuleMap(r.modules...)
	modules.AddBuiltinModule("project", projectModule(hc))
	script.SetImports(modules)

	vars := map[string]interface{}{
		"packageId":      hc.PackageID,
		"packageVersion": hc.PackageVersion,
		"operation":      hc.Operation,
		"packageDir":     hc.PackageDir,
		"projectName":    hc.ProjectName,
		"projectDir":     hc.ProjectDir,
	}
	for k, v := range hc.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := script.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}
	// scripts report failure by assigning err
	if err := script.Add("err", ""); err != nil {
		return fmt.Errorf("failed to add err to script: %w", err)
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", name, errors.ErrHookExecution, err)
	}

	errVar := compiled.Get("err")
	switch v := errVar.Value().(type) {
	case error:
		return fmt.Errorf("%s: %w: %w", name, errors.ErrHookScript, v)
	case string:
		if v != "" {
			return fmt.Errorf("%s: %w: %s", name, errors.ErrHookScript, v)
		}
	}
	return nil
}

func projectModule(hc *Context) map[string]tengo.Object {
	props := make(map[string]tengo.Object, len(hc.Properties))
	for k, v := range hc.Properties {
		props[k] = &tengo.String{Value: v}
	}
	return map[string]tengo.Object{
		"name":       &tengo.String{Value: hc.ProjectName},
		"dir":        &tengo.String{Value: hc.ProjectDir},
		"properties": &tengo.ImmutableMap{Value: props},
	}
}
