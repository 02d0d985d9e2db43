package command

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

var personCmd = &cobra.Command{
	Use:     "person",
	Aliases: []string{"persons"},
	Short:   "Browse actors and directors",
}

var personListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List persons",
	Example: `  moviehub person list --profile actors --gender F --sort last_name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		addString(cmd, q, "profile", "profile")
		addString(cmd, q, "gender", "gender")
		addListFlags(cmd, q)

		page, err := optionalClient(cmd.Context()).ListPersons(cmd.Context(), q)
		if err != nil {
			return err
		}
		printPersons(cmd.OutOrStdout(), page)
		return nil
	},
}

var personShowCmd = &cobra.Command{
	Use:   "show [person-id]",
	Short: "Show a person and their filmography",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, err := optionalClient(cmd.Context()).Person(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s, %d\n", heading(p.FirstName), heading(p.LastName), p.Age)
		fmt.Fprintf(out, "Born: %s   Likes: %d   Dislikes: %d\n", p.Birthdate, p.Votes.Likes, p.Votes.Dislikes)
		if p.Country != nil {
			fmt.Fprintf(out, "Country: %s\n", p.Country.Name)
		}
		printBriefs(out, "Acted in", p.ActedIn)
		printBriefs(out, "Directed", p.Directed)
		return nil
	},
}

func init() {
	personCmd.AddCommand(personListCmd, personShowCmd)
	personCmd.AddCommand(reactionCommands(models.KindPerson)...)

	personListCmd.Flags().String("profile", "", "actors or directors")
	personListCmd.Flags().String("gender", "", "M, F or U")
	listFlags(personListCmd)
}

func printPersons(w io.Writer, page *dto.ListPage[dto.PersonListItem]) {
	if len(page.Results) == 0 {
		fmt.Fprintln(w, "No persons found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, heading("ID\tNAME\tAGE\tGENDER\t"))
	for _, p := range page.Results {
		fmt.Fprintf(tw, "%d\t%s %s\t%d\t%s\t\n", p.ID, p.FirstName, p.LastName, p.Age, p.Gender)
	}
	tw.Flush()
	printPagination(w, page.Pagination.Number, page.Pagination.TotalPages, page.Pagination.Total)
}

func printBriefs(w io.Writer, title string, movies []dto.MovieBrief) {
	if len(movies) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", heading(title))
	for _, m := range movies {
		fmt.Fprintf(w, "  #%d %s (%d)\n", m.ID, m.Name, m.ReleaseYear)
	}
}
