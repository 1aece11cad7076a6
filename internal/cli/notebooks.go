package cli

import (
	"fmt"
	"text/tabwriter"

	"notestack-be/pkg/client"

	"github.com/spf13/cobra"
)

func newNotebooksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebooks",
		Aliases: []string{"nb"},
		Short:   "Manage notebooks",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notebooks with their note counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			state := client.NewNotebooksState(c)
			if err := state.Fetch(cmd.Context()); err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNOTES\t")
			for _, nb := range state.All() {
				marker := ""
				if nb.IsDefault {
					marker = "default"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", nb.Id, nb.Name, nb.NoteCount, marker)
			}
			return w.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			nb, err := c.CreateNotebook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.success("Created notebook %s (%s)", nb.Name, nb.Id)
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a notebook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			nb, err := c.RenameNotebook(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.success("Renamed to %s", nb.Name)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a notebook; its notes move to the default notebook",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			message, _, err := c.DeleteNotebook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.success("%s", message)
			return nil
		},
	}

	cmd.AddCommand(list, add, rename, remove)
	return cmd
}
