package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/glorpus-work/solpkg/pkg/detail"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

type detailOptions struct {
	action  string
	version string
	showAll bool
}

func (o *detailOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.action, "action", "a", "", "Action to evaluate (install, update, uninstall, consolidate)")
	cmd.Flags().StringVar(&o.version, "version", "", "Version to evaluate (defaults to the first offered version)")
	cmd.Flags().BoolVar(&o.showAll, "show-all", false, "Also list projects the action does not apply to")
}

// selector is the part of the detail models the flags drive.
type selector interface {
	SetSelectedAction(a model.Action) error
	SetSelectedVersion(v *version.Version) error
}

func (o *detailOptions) apply(m selector) error {
	if o.action != "" {
		a, err := model.ParseAction(o.action)
		if err != nil {
			return err
		}
		if err := m.SetSelectedAction(a); err != nil {
			return err
		}
	}
	if o.version != "" {
		v, err := model.ParseVersion(o.version)
		if err != nil {
			return err
		}
		if err := m.SetSelectedVersion(v); err != nil {
			return err
		}
	}
	return nil
}

// NewDetailCmd creates the detail command.
func NewDetailCmd() *cobra.Command {
	var opts detailOptions

	cmd := &cobra.Command{
		Use:   "detail PACKAGE",
		Short: "Show which projects an action applies to",
		Long: `Show the package detail for the whole solution: the offered actions, the
version picker and, for every project, the installed version and whether the
selected action applies to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetail(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	opts.addFlags(cmd)

	return cmd
}

// solutionModel builds the solution detail model for id and applies the flags.
func (s *session) solutionModel(ctx context.Context, id string, opts detailOptions) (*detail.SolutionModel, error) {
	m := detail.NewSolutionModel(s.sol, s.feeds)
	m.SetShowAll(opts.showAll || s.cfg.Settings.ShowAll)
	if err := m.SetPackage(ctx, id); err != nil {
		return nil, err
	}
	if err := opts.apply(m); err != nil {
		return nil, err
	}
	return m, nil
}

type projectView struct {
	Name      string `json:"name"`
	Installed string `json:"installed,omitempty"`
	Enabled   bool   `json:"enabled"`
	Selected  bool   `json:"selected"`
}

type detailView struct {
	Package       string        `json:"package"`
	Actions       []string      `json:"actions"`
	Action        string        `json:"action"`
	Versions      []string      `json:"versions"`
	Version       string        `json:"version,omitempty"`
	SelectAll     string        `json:"select_all"`
	Checkbox      string        `json:"checkbox"`
	ActionEnabled bool          `json:"action_enabled"`
	Projects      []projectView `json:"projects"`

	selectedChoice string
}

func newDetailView(m *detail.SolutionModel) detailView {
	view := detailView{
		Package:       m.PackageID(),
		Action:        string(m.SelectedAction()),
		Actions:       make([]string, 0, len(m.Actions())),
		Versions:      make([]string, 0, len(m.Versions())),
		SelectAll:     m.SelectCheckboxText(),
		Checkbox:      m.CheckboxState().String(),
		ActionEnabled: m.ActionEnabled(),
		Projects:      make([]projectView, 0, len(m.Projects())),
	}
	for _, a := range m.Actions() {
		view.Actions = append(view.Actions, string(a))
	}
	for _, c := range m.Versions() {
		view.Versions = append(view.Versions, c.String())
	}
	if c, ok := m.SelectedVersion(); ok {
		view.Version = c.Version.Original()
		view.selectedChoice = c.String()
	}
	for _, e := range m.Projects() {
		pv := projectView{Name: e.Project().Name, Enabled: e.Enabled(), Selected: e.Selected()}
		if v := e.Version(); v != nil {
			pv.Installed = v.Original()
		}
		view.Projects = append(view.Projects, pv)
	}
	return view
}

func runDetail(ctx context.Context, w io.Writer, id string, opts detailOptions) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	m, err := s.solutionModel(ctx, id, opts)
	if err != nil {
		return err
	}
	view := newDetailView(m)
	if s.jsonOutput() {
		return writeJSON(w, view)
	}
	printDetail(w, view)
	return nil
}

func printDetail(w io.Writer, view detailView) {
	_, _ = colorHeader.Fprintf(w, "%s\n", view.Package)
	if len(view.Actions) == 0 {
		_, _ = colorWarn.Fprintln(w, "No action is available for this package")
	} else {
		_, _ = fmt.Fprintf(w, "Actions: %s\n", strings.Join(view.Actions, ", "))
	}
	_, _ = fmt.Fprintf(w, "Action:  %s\n", model.Action(view.Action).Title())

	_, _ = fmt.Fprintln(w, "Versions:")
	if len(view.Versions) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
	}
	marked := false
	for _, v := range view.Versions {
		marker := " "
		if !marked && v == view.selectedChoice {
			marker = "*"
			marked = true
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", marker, v)
	}

	_, _ = fmt.Fprintf(w, "\n%s [%s]\n", view.SelectAll, view.Checkbox)
	tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "\tPROJECT\tINSTALLED")
	for _, p := range view.Projects {
		installed := p.Installed
		if installed == "" {
			installed = "-"
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", projectMarker(p), p.Name, installed)
	}
	_ = tabWriter.Flush()

	if view.ActionEnabled {
		_, _ = colorSelected.Fprintf(w, "\n%s is ready to run\n", model.Action(view.Action).Title())
	} else {
		_, _ = colorWarn.Fprintln(w, "\nNo project is selected")
	}
}

func projectMarker(p projectView) string {
	switch {
	case !p.Enabled:
		return colorDisabled.Sprint("[-]")
	case p.Selected:
		return colorSelected.Sprint("[x]")
	default:
		return "[ ]"
	}
}
