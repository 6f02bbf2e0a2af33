// Package commands defines the splitctl CLI, an offline front end to the
// settlement calculator.
//
// Commands
//
//   - settle    Compute balances and transfers for a roster and expense file
//   - month     Print the YYYY-MM bucket a date belongs to
//
// The settle input is JSON:
//
//	{
//	  "members":  [{"id": "a", "name": "Alice"}, {"id": "b", "name": "Bob"}],
//	  "expenses": [{"amount": "90", "payer": "a", "date": "2026-03-01", "category": "Food"}]
//	}
//
// Pass "-" as the file to read from stdin.
package commands
