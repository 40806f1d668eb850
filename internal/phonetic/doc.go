// Package phonetic fetches IPA pronunciation breakdowns for Spanish words.
package phonetic
