package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// syntaxReference is the diagram language reference shown by "seqdiag syntax".
const syntaxReference = "# seqdiag language\n\n" +
	"One statement per line. Blank lines and lines starting with `#` are ignored.\n" +
	"Keywords are case-sensitive.\n\n" +
	"## Participants\n\n" +
	"```\n" +
	"participant Server\n" +
	"actor User\n" +
	"participant \"Web Shop\" as Shop\n" +
	"```\n\n" +
	"Lanes appear in the order participants are first mentioned. A name used in a\n" +
	"message or note without a declaration becomes a plain participant. Declare an\n" +
	"alias before using it; the first mention of a name wins.\n\n" +
	"## Messages\n\n" +
	"```\n" +
	"User -> Shop: solid arrow\n" +
	"User ->> Shop: solid, open head\n" +
	"Shop --> User: dashed reply\n" +
	"Shop -->> User: dashed, open head\n" +
	"Shop -> Shop: self message\n" +
	"```\n\n" +
	"Write `+` next to the arrow to activate the target and `-` to deactivate the\n" +
	"source, as in `User ->+ Shop: order` and `Shop -->- User: done`. Use `\\n` in a\n" +
	"label for a line break.\n\n" +
	"## Notes\n\n" +
	"```\n" +
	"note left of User: text\n" +
	"note right of Shop: text\n" +
	"note over User, Shop: spans both lanes\n" +
	"note over Shop\n" +
	"  several\n" +
	"  lines\n" +
	"end note\n" +
	"```\n\n" +
	"## States and references\n\n" +
	"```\n" +
	"state over Shop: waiting\n" +
	"ref over User, Shop: login\n" +
	"User -> ref over Shop, Bank: pay\n" +
	"  payment flow\n" +
	"end ref --> User: receipt\n" +
	"```\n\n" +
	"`state` draws a rounded box over one or more lanes. `ref` draws a box that\n" +
	"stands for an interaction shown elsewhere. Without a colon, or when opened by\n" +
	"a message into `ref over`, its text runs until `end ref`, which may send a\n" +
	"message back out of the box.\n\n" +
	"## Blocks\n\n" +
	"```\n" +
	"alt paid\n" +
	"  Shop -> User: receipt\n" +
	"else declined\n" +
	"  Shop -> User: error\n" +
	"end\n" +
	"```\n\n" +
	"`alt`, `opt`, `loop` and `par` open a frame that a bare `end` closes. `else`\n" +
	"adds a divider to the innermost frame. Frames nest.\n\n" +
	"## Lifelines\n\n" +
	"| Statement | Effect |\n" +
	"|---|---|\n" +
	"| `activate P` | start an activation bar on P |\n" +
	"| `deactivate P` | end the innermost bar; ignored when P has none |\n" +
	"| `destroy P` | end P's lifeline with a cross; P takes no further part |\n\n" +
	"## Diagram settings\n\n" +
	"| Statement | Effect |\n" +
	"|---|---|\n" +
	"| `title Checkout` | caption above the diagram |\n" +
	"| `autonumber` / `autonumber off` | number messages; the count resumes when turned back on |\n" +
	"| `option footer=box` | repeat participant boxes at the bottom (`box`, `bar` or `none`) |\n"

// syntaxCommand creates the syntax command that prints the language reference.
func (c *CLI) syntaxCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "syntax",
		Short: "Show the diagram language reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if raw || !isTerminal(os.Stdout) {
				_, err := fmt.Fprint(out, syntaxReference)
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(88),
			)
			if err != nil {
				return fmt.Errorf("markdown renderer: %w", err)
			}
			s, err := r.Render(syntaxReference)
			if err != nil {
				return fmt.Errorf("render reference: %w", err)
			}
			_, err = fmt.Fprint(out, s)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the reference as plain markdown")

	return cmd
}
