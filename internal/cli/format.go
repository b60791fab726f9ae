package cli

import (
	"github.com/spf13/cobra"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/protocol"
)

func newFormatCmd(a *app) *cobra.Command {
	var flagPattern, flagOffset string

	cmd := &cobra.Command{
		Use:   "format KIND VALUE",
		Short: "Render a time value as text",
		Long: `Render a time value as text.

KIND is instant, wall_clock, local_date_time or local_date. Absolute values
may be given as epoch milliseconds; instants also as ISO-8601 text ending in
an offset. Local values are ISO-8601 local text.`,
		Example: `  timepal format wall_clock 1709647629120 --pattern "yyyy-MM-dd HH:mm" --offset +05:30
  timepal format local_date 2024-03-05 --pattern "EEEE, d MMMM uuuu"`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			v, err := domain.Decode(valueArg(kind, args[1]))
			if err != nil {
				return err
			}
			p, err := domain.ResolvePattern(flagPattern)
			if err != nil {
				return err
			}
			offset, err := domain.ResolveOffset(flagOffset)
			if err != nil {
				return err
			}

			text, err := domain.Render(a.facade, p, v, offset)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), text, protocol.FormatResponse{Text: text})
		},
	}
	cmd.Flags().StringVarP(&flagPattern, "pattern", "p", "", "pattern or predefined pattern name")
	cmd.Flags().StringVarP(&flagOffset, "offset", "z", "", "zone offset to render absolute values at")
	return cmd
}
