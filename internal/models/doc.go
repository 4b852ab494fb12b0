// Package models defines the core domain models for mokkicalc.
//
// # Trip state
//
// A Trip is the single owned state object of the cost allocation engine:
//   - Expense: a purchase and the meals its price is divided across
//   - Day: the meals served on one day, plus derived rates and attendance counts
//   - Person: a participant with one Attendance per Day and a derived Cost
//
// Derived fields (Day.Rates, Day.AttendanceCounts, Day.TotalRate, Person.Cost,
// Trip.Totals) are only ever written by the calculator package.
//
// # Alignment
//
// Person.Attendance is index-aligned with Trip.Days and every Attendance
// carries the stable ID of its Day. Trip.Validate reports any drift.
//
// # Amounts
//
// Amounts are exact decimals (github.com/shopspring/decimal). Rounding to
// cents is left to whoever renders them.
package models
