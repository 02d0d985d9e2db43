package command

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"moviehub/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// listFlags adds the flags every listing accepts.
func listFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Name contains")
	cmd.Flags().StringSlice("sort", nil, "Sort field, prefix - for descending, repeatable")
	cmd.Flags().Int("page", 0, "Page number")
}

func addListFlags(cmd *cobra.Command, q url.Values) {
	addString(cmd, q, "search", "search")
	if sorts, _ := cmd.Flags().GetStringSlice("sort"); len(sorts) > 0 {
		q["sort"] = sorts
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}

func addString(cmd *cobra.Command, q url.Values, flag, param string) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		q.Set(param, v)
	}
}

func addIDs(q url.Values, param string, ids []int64) {
	for _, id := range ids {
		q.Add(param, strconv.FormatInt(id, 10))
	}
}

func printPagination(w io.Writer, page, pages int, total int64) {
	fmt.Fprintln(w, faint(fmt.Sprintf("page %d of %d, %d total", page, pages, total)))
}

// reactionCommands builds like, dislike and, where supported, bookmark
// subcommands for one entity kind.
func reactionCommands(kind models.TargetKind) []*cobra.Command {
	vote := func(use, short string, value int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [id]",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				c, err := authenticatedClient(cmd.Context())
				if err != nil {
					return err
				}
				resp, err := c.React(cmd.Context(), kind, id, value)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d: %s (%d likes, %d dislikes)\n",
					success("✓"), kind, id, resp.State, resp.Likes, resp.Dislikes)
				return nil
			},
		}
	}
	cmds := []*cobra.Command{
		vote("like", fmt.Sprintf("Like a %s, again to withdraw", kind), models.VoteLike),
		vote("dislike", fmt.Sprintf("Dislike a %s, again to withdraw", kind), models.VoteDislike),
	}
	if !kind.Bookmarkable() {
		return cmds
	}
	return append(cmds, &cobra.Command{
		Use:   "bookmark [id]",
		Short: fmt.Sprintf("Toggle a bookmark on a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := authenticatedClient(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := c.Bookmark(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			state := "removed from"
			if resp.Bookmarked {
				state = "added to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d %s bookmarks\n", success("✓"), kind, id, state)
			return nil
		},
	})
}
