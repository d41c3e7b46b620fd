// Package language defines the set of supported work-order languages and
// their mapping to speech-synthesis voice locales and Drive folder suffixes.
package language
