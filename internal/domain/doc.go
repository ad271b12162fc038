// Package domain defines the core entities of the answer checker: flashcards,
// chat messages, review outcomes, and the evaluation an LLM produces for a
// user's answer. Entities validate themselves on construction and expose
// sentinel errors so callers can branch with errors.Is.
package domain
