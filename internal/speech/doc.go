// Package speech turns Spanish words into playable pronunciation audio.
// A Provider synthesizes raw PCM samples, the Cache deduplicates requests
// per word and stores the encoded WAV result for the rest of the session.
package speech
