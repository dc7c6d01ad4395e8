package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-terrain/pkg/formats"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.obj>",
		Short: "Validate an OBJ mesh and show record counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			obj, err := formats.ParseOBJ(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:       %s\n", args[0])
			fmt.Fprintf(out, "Vertices:   %d\n", len(obj.Vertices))
			fmt.Fprintf(out, "Normals:    %d\n", len(obj.Normals))
			fmt.Fprintf(out, "TexCoords:  %d\n", len(obj.TexCoords))
			fmt.Fprintf(out, "Faces:      %d\n", len(obj.Faces))
			if obj.Ignored > 0 {
				fmt.Fprintf(out, "Ignored:    %d\n", obj.Ignored)
			}
			for _, c := range obj.Comments {
				fmt.Fprintf(out, "# %s\n", c)
			}
			return nil
		},
	}
}
