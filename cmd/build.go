package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yunus25jmi1/personal-Blog-website/internal/build"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site",
	Long: `Generate the full static site into the output directory.

Documents that fail validation are skipped and reported. A duplicate slug
among published posts aborts the build and nothing is written.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("out", "o", "", "output directory (overrides config)")
	bindFlag("build.output", buildCmd.Flags().Lookup("out"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b := &build.Builder{Cfg: cfg, Log: log}
	res, err := b.Run(cmd.Context())
	if err != nil {
		var dup *errdomain.DuplicateSlugError
		if errors.As(err, &dup) {
			for _, c := range dup.Conflicts {
				log.Error("slug conflict", "slug", c.Slug, "ids", strings.Join(c.IDs, ", "))
			}
		}
		return err
	}

	for _, w := range res.Warnings {
		log.Warn("ingest warning", "path", w.Path, "msg", w.Msg)
	}
	for _, rej := range res.Rejected {
		log.Warn("document rejected", "id", rej.ID)
		for _, iss := range rej.Issues {
			log.Warn("schema issue", "id", rej.ID, "field", iss.Field, "kind", string(iss.Kind), "detail", iss.Detail)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %d posts, %d pages, %d routes -> %s\n",
		res.Posts, res.Pages, len(res.Routes), cfg.Build.OutputDir)
	if n := len(res.Rejected); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents rejected, see warnings\n", n)
	}
	return nil
}
