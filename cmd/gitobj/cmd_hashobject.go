package main

import (
	"fmt"
	"io"
	"os"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var (
		objType string
		write   bool
		stdin   bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-t <type>] [-w] (--stdin | <file>)",
		Short: "Compute an object ID and optionally store the object",
		Args: func(cmd *cobra.Command, args []string) error {
			if stdin {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if stdin {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			o, err := object.Decode(object.ObjectType(objType), data)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			h := object.HashObject(o.Type(), o.Payload())
			if write {
				logger := newLogger(cmd)
				defer logger.Sync()

				r, err := openRepo(logger)
				if err != nil {
					return fmt.Errorf("hash-object: %w", err)
				}
				if h, err = r.Store.Write(o); err != nil {
					return fmt.Errorf("hash-object: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", string(object.TypeBlob), "object type")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the repository")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the object from standard input")
	return cmd
}
