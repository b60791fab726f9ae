package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/protocol"
)

func newConvertCmd(a *app) *cobra.Command {
	var flagTo string

	cmd := &cobra.Command{
		Use:     "convert KIND VALUE --to KIND",
		Short:   "Convert a time value to another representation",
		Example: `  timepal convert instant 2024-03-05T14:07:09.12Z --to wall_clock`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			if flagTo == "" {
				return fmt.Errorf("%w: --to is required", domain.ErrInvalidInput)
			}
			to, err := kindArg(flagTo)
			if err != nil {
				return err
			}
			v, err := domain.Decode(valueArg(kind, args[1]))
			if err != nil {
				return err
			}

			converted, err := domain.Convert(a.facade, v, to)
			if err != nil {
				return err
			}
			out, err := domain.Encode(converted)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), valueText(out), protocol.ConvertResponse{Value: out})
		},
	}
	cmd.Flags().StringVar(&flagTo, "to", "", "target kind")
	return cmd
}
