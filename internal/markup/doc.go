// Package markup parses the inline foreign-word markup the chat model
// embeds in its replies. The only recognized form is
// <foreign>[word]==[translation]</foreign>; anything else, including
// malformed tags, passes through as plain text.
package markup
