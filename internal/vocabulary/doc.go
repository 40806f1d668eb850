// Package vocabulary tracks the Spanish words a learner has encountered
// in chat, keyed case-insensitively, with encounter counts and the most
// recent sentence each word appeared in.
package vocabulary
