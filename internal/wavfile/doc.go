// ABOUTME: Minimal PCM WAV reader/writer for the CLI's ingestion/export boundary
// ABOUTME: Grounded on e-mu-soundbanks's internal/wav encoder, extended with a parser
// Package wavfile reads and writes 16-bit PCM WAV files. It exists only
// to feed samples into and out of pkg/sea from the command-line demo;
// the codec itself never touches the WAV format.
package wavfile
