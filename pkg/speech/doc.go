// Package speech provides ports.Recognizer and ports.Synthesizer adapters.
//
// Console adapters turn typed lines into utterances and pace printed
// prompts like speech. Command adapters delegate to external programs
// (for example espeak or a whisper wrapper). Nop adapters stand in when
// no capability is available, leaving SubmitUtterance as the only input.
package speech
