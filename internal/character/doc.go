// Package character models a player's Anki Leveling character: identity,
// the five stats, progression, and the per-rank dungeon pass/fail history
// with its derived totals and success rate.
//
// Construction is total. Records with missing or mistyped fields produce a
// character with documented defaults instead of an error.
package character
