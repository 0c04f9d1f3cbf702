package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/logger"
)

// Output formats accepted by fragment list.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	listPage       int
	listOutput     string
	showPage       int
	splitMode      string
	splitTarget    int
	splitTolerance int
)

// pageListing is the structured form of one page.
type pageListing struct {
	Page       int           `json:"page" yaml:"page"`
	TotalPages int           `json:"total_pages" yaml:"total_pages"`
	Fragments  []fragmentRow `json:"fragments" yaml:"fragments"`
}

// fragmentRow is one fragment without its content.
type fragmentRow struct {
	Index  int    `json:"index" yaml:"index"`
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Words  int    `json:"words" yaml:"words"`
}

var fragmentCmd = &cobra.Command{
	Use:     "fragment",
	Aliases: []string{"fragments", "frag"},
	Short:   "Manage fragments",
	Long: `List, read, add, split and delete fragments.

Pages and indexes are one-based, matching the row numbers shown in the UI.`,
}

var fragmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the fragments on a page",
	Args:  cobra.NoArgs,
	RunE:  runFragmentList,
}

var fragmentShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Print one fragment with its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runFragmentShow,
}

var fragmentAddCmd = &cobra.Command{
	Use:   "add [paths...]",
	Short: "Load documents as new fragments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFragmentAdd,
}

var fragmentSplitCmd = &cobra.Command{
	Use:   "split [ids...]",
	Short: "Split fragments into smaller pieces",
	Long: `Split the given fragments and replace them with the produced pieces.

Modes:
  size  Pack whole sentences up to --target words, accepting pieces within
        --tolerance of the target
  row   Emit every non-blank line as its own fragment

Unset flags fall back to the fragmentation settings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFragmentSplit,
}

var fragmentDeleteCmd = &cobra.Command{
	Use:     "delete [ids...]",
	Aliases: []string{"rm"},
	Short:   "Delete fragments by id",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFragmentDelete,
}

func init() {
	fragmentListCmd.Flags().IntVar(&listPage, "page", 1, "page to list")
	fragmentListCmd.Flags().StringVarP(&listOutput, "output", "o", outputText, "output format (text, json, yaml)")
	fragmentShowCmd.Flags().IntVar(&showPage, "page", 1, "page holding the fragment")
	fragmentSplitCmd.Flags().StringVar(&splitMode, "mode", "", "split mode (size or row)")
	fragmentSplitCmd.Flags().IntVar(&splitTarget, "target", 0, "target word count per piece")
	fragmentSplitCmd.Flags().IntVar(&splitTolerance, "tolerance", 0, "accepted deviation from the target")

	fragmentCmd.AddCommand(fragmentListCmd)
	fragmentCmd.AddCommand(fragmentShowCmd)
	fragmentCmd.AddCommand(fragmentAddCmd)
	fragmentCmd.AddCommand(fragmentSplitCmd)
	fragmentCmd.AddCommand(fragmentDeleteCmd)
	rootCmd.AddCommand(fragmentCmd)
}

func runFragmentList(cmd *cobra.Command, _ []string) error {
	if err := requireStore(); err != nil {
		return err
	}

	view, err := loadPage(cmd.Context(), listPage)
	if err != nil {
		return err
	}
	listing := newPageListing(view.Snapshot)

	switch strings.ToLower(listOutput) {
	case outputJSON:
		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fragments: %w", err)
		}
		cmd.Println(string(data))
	case outputYAML:
		data, err := yaml.Marshal(listing)
		if err != nil {
			return fmt.Errorf("failed to marshal fragments: %w", err)
		}
		cmd.Print(string(data))
	case outputText:
		printListing(cmd, listing)
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, listOutput)
	}
	return nil
}

func printListing(cmd *cobra.Command, listing pageListing) {
	if len(listing.Fragments) == 0 {
		cmd.Println("No fragments. Add documents with 'datalex fragment add <paths...>'.")
		return
	}

	cmd.Printf("Page %d of %d\n\n", listing.Page, listing.TotalPages)
	for _, f := range listing.Fragments {
		cmd.Printf("  [%d] %s (%s words)\n", f.Index, f.Name, humanize.Comma(int64(f.Words)))
		cmd.Printf("      ID: %s\n", f.ID)
	}
}

func newPageListing(snap domain.Snapshot) pageListing {
	listing := pageListing{
		Page:       snap.CurrentPage + 1,
		TotalPages: max(snap.TotalPages, 1),
		Fragments:  make([]fragmentRow, len(snap.Records)),
	}
	for i, r := range snap.Records {
		listing.Fragments[i] = fragmentRow{
			Index:  i + 1,
			ID:     r.ID,
			Name:   r.Label(),
			Source: r.SourcePath,
			Words:  r.WordCount,
		}
	}
	return listing
}

// loadPage refreshes and moves to the one-based page.
func loadPage(ctx context.Context, page int) (domain.WorkspaceView, error) {
	if page < 1 {
		return domain.WorkspaceView{}, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}
	if err := fragmentStore.Refresh(ctx); err != nil {
		return domain.WorkspaceView{}, fmt.Errorf("failed to load fragments: %w", err)
	}

	view := fragmentStore.View()
	if view.Snapshot.CurrentPage == page-1 {
		return view, nil
	}
	accepted, err := paginator.GoTo(ctx, page-1)
	if err != nil {
		return domain.WorkspaceView{}, fmt.Errorf("failed to load page %d: %w", page, err)
	}
	if !accepted {
		return domain.WorkspaceView{}, fmt.Errorf("%w: page %d of %d",
			domain.ErrPageOutOfRange, page, max(view.Snapshot.TotalPages, 1))
	}
	return fragmentStore.View(), nil
}

func runFragmentShow(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return fmt.Errorf("%w: index must be a positive number, got %q", domain.ErrInvalidInput, args[0])
	}
	view, err := loadPage(cmd.Context(), showPage)
	if err != nil {
		return err
	}
	if index > len(view.Snapshot.Records) {
		return fmt.Errorf("%w: page %d has %d fragment(s)", domain.ErrNotFound, showPage, len(view.Snapshot.Records))
	}

	if err := fragmentStore.OpenFragment(cmd.Context(), index-1); err != nil {
		return fmt.Errorf("failed to open fragment: %w", err)
	}
	open := fragmentStore.View().Open
	r := open.Record

	cmd.Printf("%s\n", r.Label())
	cmd.Printf("  ID: %s\n", r.ID)
	if r.SourcePath != "" {
		cmd.Printf("  Source: %s\n", r.SourcePath)
	}
	cmd.Printf("  Words: %s\n", humanize.Comma(int64(r.WordCount)))
	cmd.Println()
	cmd.Println(open.Content())
	return nil
}

func runFragmentAdd(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}

	if err := fragmentStore.AddFromFiles(cmd.Context(), args); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	snap := fragmentStore.View().Snapshot
	cmd.Printf("Added %d document(s). The workspace has %d page(s).\n", len(args), max(snap.TotalPages, 1))
	return nil
}

func runFragmentSplit(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}
	if jobController == nil {
		return fmt.Errorf("fragmentation %w", errNotConfigured)
	}

	req, err := splitRequest(cmd, args)
	if err != nil {
		return err
	}
	summary, err := jobController.Submit(cmd.Context(), req)
	if err != nil && summary.Total == 0 {
		return fmt.Errorf("fragmentation failed: %w", err)
	}

	cmd.Printf("Split %d fragment(s) into %s piece(s): %d within bounds, %d outside.\n",
		len(req.SelectedIDs), humanize.Comma(int64(summary.Total)), summary.Succeeded(), summary.Failed)
	if err != nil {
		logger.Warn("fragmentation finished with an error: %v", err)
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

// splitRequest fills unset flags from the fragmentation settings.
func splitRequest(cmd *cobra.Command, ids []string) (domain.FragmentationRequest, error) {
	defaults := domain.DefaultAppSettings().Fragmentation
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			defaults = settings.Fragmentation
		} else {
			logger.Warn("using default fragmentation settings: %v", err)
		}
	}

	req := domain.FragmentationRequest{
		SelectedIDs:     ids,
		Mode:            defaults.Mode,
		TargetWordCount: defaults.Target,
		Tolerance:       defaults.Tolerance,
	}
	if cmd.Flags().Changed("mode") {
		mode, err := domain.ParseFragmentationMode(splitMode)
		if err != nil {
			return req, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
		}
		req.Mode = mode
	}
	if cmd.Flags().Changed("target") {
		req.TargetWordCount = splitTarget
	}
	if cmd.Flags().Changed("tolerance") {
		req.Tolerance = splitTolerance
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func runFragmentDelete(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}

	if err := fragmentStore.DeleteFragments(cmd.Context(), args); err != nil {
		return fmt.Errorf("failed to delete fragments: %w", err)
	}
	cmd.Printf("Deleted %d fragment(s).\n", len(args))
	return nil
}
