// Package tts is the speech synthesis boundary.
//
// Synthesizer converts narration text in a supported language into mono
// LINEAR16 audio at a fixed sample rate. The production implementation
// calls the Google Cloud Text-to-Speech API; Split keeps each request under
// the API's input limit so long narrations synthesize as a sequence of
// chunks the pipeline concatenates afterwards.
package tts
