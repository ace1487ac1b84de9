/*
Package ports defines the driven ports (interfaces) of the screening agent.

These interfaces decouple the conversation core from concrete speech engines
and storage backends, so production adapters and test doubles are
interchangeable.

# Key Interfaces

  - Recognizer: turns speech into final utterances, one listening window at a time.
  - Synthesizer: speaks text and returns only when playback has finished.
  - RecordStore: persists jobs, candidates and appointments for the back office.
*/
package ports
