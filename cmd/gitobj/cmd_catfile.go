package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/odvcencio/gitobj/pkg/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCatFileCmd() *cobra.Command {
	var showType, showSize, pretty bool

	cmd := &cobra.Command{
		Use:   "cat-file (<type> | -t | -s | -p) <object>",
		Short: "Print the contents, type or size of an object",
		Args: func(cmd *cobra.Command, args []string) error {
			if showType || showSize || pretty {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			defer logger.Sync()

			r, err := openRepo(logger)
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}

			h, err := object.ParseHash(args[len(args)-1])
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}

			out := cmd.OutOrStdout()
			switch {
			case showType, showSize, pretty:
				o, err := r.Store.Read(h)
				if err != nil {
					return fmt.Errorf("cat-file: %w", err)
				}
				switch {
				case showType:
					fmt.Fprintln(out, o.Type())
				case showSize:
					fmt.Fprintln(out, len(o.Payload()))
				default:
					return prettyPrint(out, o)
				}
				return nil
			}

			typ := object.ObjectType(args[0])
			if !typ.IsValid() {
				return fmt.Errorf("cat-file: %w %q", object.ErrUnknownType, typ)
			}
			o, err := r.Store.ReadAs(h, typ)
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}
			_, err = out.Write(object.Encode(o))
			return err
		},
	}

	cmd.Flags().BoolVarP(&showType, "show-type", "t", false, "print the object type")
	cmd.Flags().BoolVarP(&showSize, "show-size", "s", false, "print the payload size in bytes")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the object by type")
	cmd.MarkFlagsMutuallyExclusive("show-type", "show-size", "pretty")
	return cmd
}

// openRepo discovers the repository containing the working directory and
// checks that its format is one we can read. A config that cannot be parsed
// is only warned about, since reading objects does not depend on it.
func openRepo(logger *zap.Logger) (*repo.Repo, error) {
	r, err := repo.Discover(".", repo.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := r.CheckFormat(); err != nil {
		if errors.Is(err, repo.ErrUnsupportedFormatVersion) {
			return nil, err
		}
		logger.Warn("ignoring unreadable repository config", zap.Error(err))
	}
	return r, nil
}

func prettyPrint(w io.Writer, o object.Object) error {
	tree, ok := o.(*object.Tree)
	if !ok {
		_, err := w.Write(object.Encode(o))
		return err
	}
	entries, err := tree.Entries()
	if err != nil {
		return fmt.Errorf("cat-file: %w", err)
	}
	for _, e := range entries {
		mode := e.Mode
		if len(mode) < 6 {
			mode = strings.Repeat("0", 6-len(mode)) + mode
		}
		fmt.Fprintf(w, "%s %s %s\t%s\n", mode, e.ObjectType(), e.Hash, e.Name)
	}
	return nil
}
