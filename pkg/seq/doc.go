// Package seq renders sequence diagram text to SVG.
//
// # Pipeline
//
// [Render] runs four stages, each in its own package:
//
//   - [lexer] splits each source line into tokens
//   - [parser] builds the participant table and the ordered event list
//   - [layout] measures lanes and places every element
//   - [sink] writes the placed scene as SVG through a [styles.Style]
//
// Text widths come from [textwidth], a fixed per-character estimate, so
// output does not depend on installed fonts.
//
// # Language
//
//	title Checkout
//	actor User
//	participant "Web Shop" as Shop
//	User->+Shop: buy
//	alt paid
//	    Shop-->>User: receipt
//	else declined
//	    Shop-->>User: sorry
//	end
//	deactivate Shop
//	note over User, Shop: done
//
// Arrows are -> (solid, filled head), ->> (solid, open head), --> (dashed,
// filled head) and -->> (dashed, open head). A + after the arrow activates
// the receiver; a - deactivates the sender.
//
// # Errors
//
// The first lexical or structural problem aborts rendering. The returned
// error is a [*lexer.Error] or a [*parser.Error]; [ErrorLine] extracts the
// 1-based source line from either.
//
// # Concurrency
//
// Render keeps no state between calls and is safe for concurrent use.
package seq
