package command

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

var movieCmd = &cobra.Command{
	Use:     "movie",
	Aliases: []string{"movies"},
	Short:   "Browse, rate, like and comment on movies",
}

var movieListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, filtered and sorted",
	Example: `  moviehub movie list --genre 1 --genre 3 --rating 7 --sort -rating
  moviehub movie list --search runner --start-year 1980 --end-year 1989`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		genres, _ := cmd.Flags().GetInt64Slice("genre")
		countries, _ := cmd.Flags().GetInt64Slice("country")
		addIDs(q, "genres", genres)
		addIDs(q, "countries", countries)
		addString(cmd, q, "rating", "rating")
		addString(cmd, q, "start-year", "start_year")
		addString(cmd, q, "end-year", "end_year")
		addListFlags(cmd, q)

		page, err := optionalClient(cmd.Context()).ListMovies(cmd.Context(), q)
		if err != nil {
			return err
		}
		printMovies(cmd.OutOrStdout(), page)
		return nil
	},
}

var movieShowCmd = &cobra.Command{
	Use:   "show [movie-id]",
	Short: "Show a movie with its cast, rating and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		movie, err := optionalClient(cmd.Context()).Movie(cmd.Context(), id)
		if err != nil {
			return err
		}
		printMovie(cmd.OutOrStdout(), movie)
		return nil
	},
}

var movieRateCmd = &cobra.Command{
	Use:   "rate [movie-id] [score]",
	Short: "Rate a movie from 1 to 10",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		score, err := strconv.Atoi(args[1])
		if err != nil || score < 1 || score > 10 {
			return fmt.Errorf("score must be a whole number from 1 to 10")
		}
		resp, err := newClient().Rate(cmd.Context(), id, score)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s your rating %d, average now %.1f from %d votes\n", success("✓"), resp.Score, resp.Rating, resp.Votes)
		return nil
	},
}

var movieCommentCmd = &cobra.Command{
	Use:   "comment [movie-id]",
	Short: "Comment on a movie, or reply with --parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var req dto.CreateCommentDTO
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Text, _ = cmd.Flags().GetString("text")
		if parent, _ := cmd.Flags().GetInt64("parent"); parent > 0 {
			req.Major = &parent
		}
		resp, err := newClient().Comment(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s comment #%d posted\n", success("✓"), resp.ID)
		return nil
	},
}

func init() {
	movieCmd.AddCommand(movieListCmd, movieShowCmd, movieRateCmd, movieCommentCmd)
	movieCmd.AddCommand(reactionCommands(models.KindMovie)...)

	f := movieListCmd.Flags()
	f.Int64Slice("genre", nil, "Genre id, repeatable")
	f.Int64Slice("country", nil, "Country id, repeatable")
	f.String("rating", "", "Minimum average rating")
	f.String("start-year", "", "Released in or after")
	f.String("end-year", "", "Released in or before")
	listFlags(movieListCmd)

	movieCommentCmd.Flags().String("name", "", "Your name")
	movieCommentCmd.Flags().String("email", "", "Your email")
	movieCommentCmd.Flags().StringP("text", "t", "", "Comment text")
	movieCommentCmd.Flags().Int64("parent", 0, "Id of the comment being answered")
	_ = movieCommentCmd.MarkFlagRequired("name")
	_ = movieCommentCmd.MarkFlagRequired("email")
	_ = movieCommentCmd.MarkFlagRequired("text")
}

func printMovies(w io.Writer, page *dto.ListPage[dto.MovieListItem]) {
	if len(page.Results) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, heading("ID\tNAME\tYEAR\tRATING\tGENRES\t"))
	for _, m := range page.Results {
		mark := ""
		if m.IsInBookmarks {
			mark = "★"
		}
		fmt.Fprintf(tw, "%d\t%s %s\t%d\t%.1f\t%s\t\n", m.ID, m.Name, mark, m.ReleaseYear, m.Rating, strings.Join(m.Genres, ", "))
	}
	tw.Flush()
	printPagination(w, page.Pagination.Number, page.Pagination.TotalPages, page.Pagination.Total)
}

func printMovie(w io.Writer, m *dto.MovieDetail) {
	fmt.Fprintf(w, "%s (%d)\n", heading(m.Name), m.ReleaseYear)
	fmt.Fprintf(w, "Rating: %.1f   Likes: %d   Dislikes: %d\n", m.Rating, m.Votes.Likes, m.Votes.Dislikes)
	if m.MyRating != nil {
		fmt.Fprintf(w, "Your rating: %d\n", *m.MyRating)
	}
	if m.Category != nil {
		fmt.Fprintf(w, "Category: %s\n", m.Category.Name)
	}
	genres := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = g.Name
	}
	fmt.Fprintf(w, "Genres: %s\n", strings.Join(genres, ", "))
	for _, d := range m.Directors {
		fmt.Fprintf(w, "Director: %s %s\n", d.FirstName, d.LastName)
	}
	for _, a := range m.Actors {
		role := ""
		if a.Role != nil {
			role = faint(" as " + *a.Role)
		}
		fmt.Fprintf(w, "Cast: %s %s%s\n", a.Person.FirstName, a.Person.LastName, role)
	}
	if m.Description != nil {
		fmt.Fprintf(w, "\n%s\n", *m.Description)
	}
	fmt.Fprintf(w, "\n%s (%d)\n", heading("Comments"), m.CommentsCount)
	printComments(w, m.Comments, "")
}

func printComments(w io.Writer, nodes []dto.CommentNode, indent string) {
	for _, c := range nodes {
		fmt.Fprintf(w, "%s#%d %s %s\n", indent, c.ID, heading(c.Name), faint(c.PubDate.Format("2006-01-02 15:04")))
		fmt.Fprintf(w, "%s  %s\n", indent, c.Text)
		printComments(w, c.Children, indent+"    ")
	}
}
