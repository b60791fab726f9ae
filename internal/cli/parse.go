package cli

import (
	"github.com/spf13/cobra"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/protocol"
)

func newParseCmd(a *app) *cobra.Command {
	var flagPattern string

	cmd := &cobra.Command{
		Use:     "parse KIND TEXT",
		Short:   "Read text into a time value",
		Example: `  timepal parse wall_clock "2024-03-05 19:37" --pattern "yyyy-MM-dd HH:mm"`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			p, err := domain.ResolvePattern(flagPattern)
			if err != nil {
				return err
			}

			v, err := domain.Parse(a.facade, kind, p, args[1])
			if err != nil {
				return err
			}
			out, err := domain.Encode(v)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), valueText(out), protocol.ParseResponse{Value: out})
		},
	}
	cmd.Flags().StringVarP(&flagPattern, "pattern", "p", "", "pattern or predefined pattern name")
	return cmd
}
