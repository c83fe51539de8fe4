package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"experimentallabor.de/gertag/modelstore"
	"github.com/spf13/cobra"
)

func newModelsCommand(env Env) *cobra.Command {
	storePath := env.ModelStore
	models := &cobra.Command{
		Use:   "models",
		Short: "Manage the model store",
	}
	models.PersistentFlags().StringVar(&storePath, "store", storePath, "model store database")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored models, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := modelstore.Open(storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tCREATED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Kind, r.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := modelstore.Open(storePath)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Delete(args[0])
		},
	}

	models.AddCommand(list, remove)
	return models
}
