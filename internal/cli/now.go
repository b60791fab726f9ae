package cli

import (
	"github.com/spf13/cobra"

	"github.com/aelexs/timepal/internal/domain"
)

func newNowCmd(a *app) *cobra.Command {
	var flagPattern, flagOffset string

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ResolvePattern(flagPattern)
			if err != nil {
				return err
			}
			offset, err := domain.ResolveOffset(flagOffset)
			if err != nil {
				return err
			}
			res, err := domain.Now(a.facade, p, offset)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), res.Text, res)
		},
	}
	cmd.Flags().StringVarP(&flagPattern, "pattern", "p", "", "pattern or predefined pattern name (default from TIMEPAL_TIME_DEFAULT_PATTERN)")
	cmd.Flags().StringVarP(&flagOffset, "offset", "z", "", "zone offset such as +05:30 (default from TIMEPAL_TIME_DEFAULT_OFFSET)")
	return cmd
}
