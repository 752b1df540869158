package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/byxorna/fable/pkg/config"
	"github.com/byxorna/fable/pkg/db"
	"github.com/byxorna/fable/pkg/db/fs"
	"github.com/byxorna/fable/pkg/text"
	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "Print the stories in the story directory, fuzzy filtered by title",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var filter string
		if len(args) > 0 {
			filter = args[0]
		}
		return printStories(cmd.Context(), os.Stdout, cfg, filter, listByTitle)
	},
}

var listByTitle bool

func init() {
	listCmd.Flags().BoolVarP(&listByTitle, "by-title", "t", false, "sort by title instead of load order")
	root.AddCommand(listCmd)
}

func printStories(ctx context.Context, w io.Writer, cfg *config.Config, filter string, byTitle bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	loader, err := fs.New(cfg.Directory)
	if err != nil {
		return err
	}

	stories, err := loader.Load(ctx)
	if err != nil && !errors.Is(err, db.ErrNoStoriesFound) {
		return err
	}

	matches := text.FilterStories(filter, stories)
	if byTitle {
		sort.Stable(v1.ByTitle(matches))
	}
	for _, s := range matches {
		fmt.Fprintf(w, "%s\t%d scenes\t%s\t%s\n", s.Title, s.Len(), text.FileSummary(s.Size, s.Modified), s.Source)
	}
	return nil
}
