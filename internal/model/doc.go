// Package model provides the record types shared by the rollcall packages.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal.
//
// Key design constraints:
//   - All JSON tags use snake_case
//   - Absence is never a stored status, it is derived when no record exists
//   - Epoch millisecond timestamps on records are authoritative; the date and
//     time-of-day strings next to them are display values derived from them
package model
