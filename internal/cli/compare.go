package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare KIND VALUE VALUE...",
		Short: "Order absolute time values and check them against now",
		Long: `Order absolute time values and check them against now.

The first output line compares the first two values (-1, 0 or 1). Each
following line is an input position, the value and whether it lies in the
future or the past. "null" is an absent value and sorts first.`,
		Example: `  timepal compare wall_clock 1709647629120 null 1709647620000`,
		Args:    minimumArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			raw := args[1:]
			if len(raw) > domain.MaxCompareValues {
				return fmt.Errorf("%w: at most %d values", domain.ErrInvalidInput, domain.MaxCompareValues)
			}

			values := make([]timepal.Temporal, len(raw))
			for i, s := range raw {
				v, err := domain.Decode(valueArg(kind, s))
				if err != nil {
					return fmt.Errorf("value %d: %w", i, err)
				}
				values[i] = v
			}

			res, err := domain.Order(a.facade, values)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), orderingText(res, raw), protocol.CompareResponse{
				Result: res.Result,
				Order:  res.Order,
				Future: res.Future,
				Past:   res.Past,
			})
		},
	}
}

func orderingText(res domain.Ordering, raw []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", res.Result)
	for _, i := range res.Order {
		state := "-"
		switch {
		case res.Future[i]:
			state = "future"
		case res.Past[i]:
			state = "past"
		}
		fmt.Fprintf(&b, "\n%d\t%s\t%s", i, raw[i], state)
	}
	return b.String()
}
