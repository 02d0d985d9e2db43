package command

import (
	"fmt"
	"text/tabwriter"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

var genreCmd = &cobra.Command{
	Use:     "genre",
	Aliases: []string{"genres"},
	Short:   "List and create genres",
}

var genreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := newClient().Genres(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, heading("ID\tNAME\tSLUG\t"))
		for _, g := range genres {
			fmt.Fprintf(tw, "%d\t%s\t%s\t\n", g.ID, g.Name, g.Slug)
		}
		return tw.Flush()
	},
}

var genreCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a genre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		slug, _ := cmd.Flags().GetString("slug")
		g, err := c.CreateGenre(cmd.Context(), dto.CreateGenreDTO{Name: args[0], Slug: slug})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s genre #%d %s (%s)\n", success("✓"), g.ID, g.Name, g.Slug)
		return nil
	},
}

// comment only has reactions here; posting lives under `movie comment`.
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Like or dislike comments",
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Show your bookmarked movies and persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		overview, err := c.Bookmarks(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d)\n", heading("Movies"), overview.MoviesTotal)
		for _, m := range overview.Movies {
			fmt.Fprintf(out, "  #%d %s (%d)\n", m.ID, m.Name, m.ReleaseYear)
		}
		fmt.Fprintf(out, "%s (%d)\n", heading("Persons"), overview.PersonsTotal)
		for _, p := range overview.Persons {
			fmt.Fprintf(out, "  #%d %s %s\n", p.ID, p.FirstName, p.LastName)
		}
		return nil
	},
}

func init() {
	genreCmd.AddCommand(genreListCmd, genreCreateCmd)
	genreCreateCmd.Flags().String("slug", "", "URL slug, derived from the name when empty")

	commentCmd.AddCommand(reactionCommands(models.KindComment)...)
}
