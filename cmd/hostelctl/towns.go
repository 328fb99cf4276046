package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTownsCmd(a *app) *cobra.Command {
	var major bool

	cmd := &cobra.Command{
		Use:   "towns [town]",
		Short: "List university towns, or the universities in one town",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				universities := a.dir.UniversitiesIn(args[0])
				if len(universities) == 0 {
					return fmt.Errorf("no universities known in %q", args[0])
				}
				for _, u := range universities {
					fmt.Fprintln(out, u)
				}
				return nil
			}

			towns := a.dir.Towns()
			if major {
				towns = a.dir.MajorTowns()
			}
			for _, t := range towns {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&major, "major", false, "Only list the major towns")
	return cmd
}
