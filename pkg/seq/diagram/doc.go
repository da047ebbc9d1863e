// Package diagram defines the in-memory model of a parsed sequence diagram.
//
// # Overview
//
// A [Diagram] is two things: a [Table] of participants and an ordered slice of
// [Event] values. The table owns every participant; events refer to them by
// their table index so the model stays a plain value graph with no pointers
// between events.
//
// Lane order is registration order. The first textual mention of a name
// (explicit declaration or implicit use in a message, note or activation)
// fixes the participant's lane; later declarations never move it.
//
// # Events
//
// [Event] is a closed set. The concrete variants are:
//
//   - [Message]: an arrow between two participants (or a self-message)
//   - [Note]: text placed left of, right of, or over one or two participants
//   - [State]: a rounded box over one or more participants
//   - [Ref]: a reference to another interaction, optionally entered and
//     left by a [Signal]
//   - [BlockOpen], [BlockElse], [BlockClose]: combined fragments (alt, opt, loop, par)
//   - [Activate], [Deactivate]: explicit activation changes
//   - [Destroy]: terminates a participant's lifeline
//   - [TitleSet], [AutonumberToggle], [OptionSet]: document-level settings
//
// Every event records the 1-based source line it came from, which the layout
// engine ignores and tools (the CLI's parse dump, diagnostics) display.
//
// Use a type switch to consume events:
//
//	for _, ev := range d.Events {
//	    switch e := ev.(type) {
//	    case diagram.Message:
//	        fmt.Println(d.Participants.At(e.From).Name, "->", d.Participants.At(e.To).Name)
//	    case diagram.Note:
//	        fmt.Println("note:", e.Text)
//	    }
//	}
package diagram
