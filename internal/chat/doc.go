// Package chat drives the conversation with the AI Spanish teacher. The
// system prompt instructs the model to tag every Spanish word with the
// foreign-word markup that package markup parses.
package chat
