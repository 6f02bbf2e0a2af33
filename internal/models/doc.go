// Package models defines the core domain models for SplitMonth.
//
// # Models
//
//   - User: Registered account, identified by a UUID, with an account role
//   - Group: Named set of members, each with a role
//   - Expense: One shared expense, bucketed by calendar month
//   - Settlement: Recommended transfers for one group-month, with a status
//
// # Design Principles
//
// 1. **IDs over pointers**: Relationships are expressed as ID strings
// 2. **Decimal money**: Amounts use decimal.Decimal, never float64
// 3. **Month buckets**: Expenses carry a derived YYYY-MM month used for filtering
//
// Balances are never stored. They are recomputed from expenses on every
// request by the calculator package; only the resulting settlement snapshot
// is persisted so that its status can be tracked.
package models
