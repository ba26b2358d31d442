// Package game implements the blackjack round state machine: betting,
// dealing, per-seat play, dealer play and settlement across one to many
// seats. The phase field is the single source of truth for which actions
// are legal; illegal requests are silently ignored so a UI can safely race
// against state transitions.
package game
